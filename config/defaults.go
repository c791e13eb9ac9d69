// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"time"

	"github.com/klauspost/compress/gzip"
)

const (
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 300
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 3600

	defaultRenderCacheSize = 64

	// Responses smaller than this are sent uncompressed.
	defaultCompressionMinSize = 1024

	defaultLimiterRate           = 5
	defaultLimiterBurst          = 30
	defaultLimiterSuspiciousRate = 0.5
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8080"

	cfg.Site.Title = "Portfolio"
	cfg.Site.Author = ""
	cfg.Site.RawLanguage = "en"
	cfg.Site.RawBaseURL = "http://localhost:8080"
	cfg.Site.ResumePath = "/doc/resume.pdf"
	cfg.Site.ThemeColor = "#111827"
	cfg.Site.ContentFile = ""

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.RenderCache.Enabled = true
	cfg.RenderCache.Size = defaultRenderCacheSize

	cfg.Compression.Enabled = true
	cfg.Compression.Level = gzip.DefaultCompression
	cfg.Compression.MinSize = defaultCompressionMinSize

	cfg.Instance.RepoURL = "https://codeberg.org/portfolio/site"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.StateFilepath = "./data/limiter_state.json"
	cfg.Limiter.FilterLocal = false
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48
	cfg.Limiter.CheckHeaders = true
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.SuspiciousRate = defaultLimiterSuspiciousRate
}
