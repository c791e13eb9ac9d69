// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/portfolio/site/config"
)

var (
	// baseHeaders are set on every response. Version headers are added in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"strict-origin-when-cross-origin"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Permissions-Policy":      {strings.Join(permissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join(contentSecurityPolicy, "; ") + ";"},
	}

	// contentSecurityPolicy allows project images from any HTTPS origin.
	// JSON-LD blocks are data, not scripts, so script-src stays 'self'.
	contentSecurityPolicy = []string{
		"base-uri 'self'",
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"font-src 'self'",
		"connect-src 'self'",
		"media-src 'self'",
		"object-src 'none'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	permissionsPolicy = []string{
		"accelerometer=()",
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}

	// staticCacheControl maps static path prefixes to their Cache-Control.
	// The first match wins.
	staticCacheControl = []struct {
		prefix string
		value  string
	}{
		{"/fonts/", "public, max-age=2592000, immutable"},
		{"/img/", "public, max-age=1209600"},
		{"/css/", "public, max-age=604800"},
		{"/js/", "public, max-age=604800"},
		{"/doc/", "public, max-age=86400"},
		{"/robots.txt", "public, max-age=86400"},
	}
)

// SetResponseHeaders adds the security, version and default cache headers.
// Page handlers replace Cache-Control when they can be cached.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Copy(headers, baseHeaders)

	headers.Set("Portfolio-Version", config.BuildVersion)
	headers.Set("Portfolio-Revision", config.Global.Build.Revision())
	headers.Set("Cache-Control", cacheControl(r.URL.Path))

	if config.Global.Development.InDevelopment {
		clearCacheOnce(headers)
	}

	next.ServeHTTP(w, r)
}

// cacheControl returns the default Cache-Control for path. Anything that is
// not a static asset is kept in the browser cache and revalidated.
func cacheControl(path string) string {
	if config.Global.Development.InDevelopment {
		return "no-store"
	}

	for _, c := range staticCacheControl {
		if strings.HasPrefix(path, c.prefix) {
			return c.value
		}
	}

	return "private, no-cache"
}

var devCacheCleared atomic.Bool

// clearCacheOnce asks the browser to drop its cache on the first response
// after a development restart.
func clearCacheOnce(headers http.Header) {
	if devCacheCleared.CompareAndSwap(false, true) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}
}
