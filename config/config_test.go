// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// LoadConfig reads the process environment, so these cases run sequentially.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg *ServerConfig)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Basic.Host)
				assert.Equal(t, "8080", cfg.Basic.Port)
				assert.Equal(t, "en", cfg.Site.Language.String())
				assert.Equal(t, "localhost:8080", cfg.Site.BaseURL.Host)
				assert.NotEmpty(t, cfg.Instance.FileServerCacheID)
				assert.True(t, cfg.Compression.Enabled)
				assert.True(t, cfg.RenderCache.Enabled)
				assert.Equal(t, defaultRenderCacheSize, cfg.RenderCache.Size)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"PORTFOLIO_HOST":                  "0.0.0.0",
				"PORTFOLIO_PORT":                  "9000",
				"PORTFOLIO_SITE_LANGUAGE":         "en-gb",
				"PORTFOLIO_SITE_BASE_URL":         "https://avery.example.com/",
				"PORTFOLIO_SITE_AUTHOR":           "Avery Quinn",
				"PORTFOLIO_LIMITER":               "true",
				"PORTFOLIO_LIMITER_RATE":          "2.5",
				"PORTFOLIO_LIMITER_PASS_IPS":      "10.0.0.0/8, 192.168.1.4",
				"PORTFOLIO_CACHE_CONTROL_MAX_AGE": "10m",
			},
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Basic.Host)
				assert.Equal(t, "9000", cfg.Basic.Port)
				assert.Equal(t, "en-GB", cfg.Site.RawLanguage)
				assert.Equal(t, "https://avery.example.com", cfg.Site.RawBaseURL)
				assert.Equal(t, "Avery Quinn", cfg.Site.Author)
				assert.True(t, cfg.Limiter.Enabled)
				assert.InDelta(t, 2.5, cfg.Limiter.Rate, 0)
				assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, cfg.Limiter.PassIPs)
				assert.Equal(t, 10*time.Minute, cfg.HTTPCache.MaxAge)
			},
		},
		{
			name:    "relative base URL",
			env:     map[string]string{"PORTFOLIO_SITE_BASE_URL": "/portfolio"},
			wantErr: errIncompleteURL,
		},
		{
			name: "malformed language",
			env:  map[string]string{"PORTFOLIO_SITE_LANGUAGE": "not a language"},
		},
		{
			name:    "off-site resume",
			env:     map[string]string{"PORTFOLIO_SITE_RESUME_PATH": "//cdn.example.com/cv.pdf"},
			wantErr: errInvalidResumePath,
		},
		{
			name:    "bad theme color",
			env:     map[string]string{"PORTFOLIO_SITE_THEME_COLOR": "blue"},
			wantErr: errInvalidThemeColor,
		},
		{
			name:    "bad log level",
			env:     map[string]string{"PORTFOLIO_LOG_LEVEL": "loud"},
			wantErr: errInvalidLogLevel,
		},
		{
			name:    "compression level out of range",
			env:     map[string]string{"PORTFOLIO_COMPRESSION_LEVEL": "12"},
			wantErr: errInvalidCompressionLevel,
		},
		{
			name:    "negative connection limit",
			env:     map[string]string{"PORTFOLIO_MAX_CONNECTIONS": "-1"},
			wantErr: errNegativeMaxConnections,
		},
		{
			name:    "empty render cache",
			env:     map[string]string{"PORTFOLIO_RENDER_CACHE_SIZE": "0"},
			wantErr: errInvalidRenderCacheSize,
		},
		{
			name: "disabled render cache ignores size",
			env: map[string]string{
				"PORTFOLIO_RENDER_CACHE":      "false",
				"PORTFOLIO_RENDER_CACHE_SIZE": "0",
			},
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()
				assert.False(t, cfg.RenderCache.Enabled)
			},
		},
		{
			name: "limiter prefix out of range",
			env: map[string]string{
				"PORTFOLIO_LIMITER":             "true",
				"PORTFOLIO_LIMITER_IPV4_PREFIX": "40",
			},
			wantErr: errInvalidIPv4Prefix,
		},
		{
			name: "limiter list entry",
			env: map[string]string{
				"PORTFOLIO_LIMITER":           "true",
				"PORTFOLIO_LIMITER_BLOCK_IPS": "example.com",
			},
			wantErr: errInvalidIPListEntry,
		},
		{
			name: "unix socket with host",
			env: map[string]string{
				"PORTFOLIO_UNIXSOCKET": "/run/portfolio.sock",
			},
			wantErr: errUnixSocketWithHostPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(configFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &ServerConfig{}
			err := cfg.LoadConfig()

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.check == nil:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
basic:
  port: "9090"
site:
  title: Avery Quinn
  language: fr
  baseUrl: https://avery.example.com
httpCache:
  cacheControlMaxAge: 90s
compression:
  enabled: false
`), 0o600))

	t.Setenv(configFileEnv, path)
	t.Setenv("PORTFOLIO_PORT", "9191")

	cfg := &ServerConfig{}
	require.NoError(t, cfg.LoadConfig())

	assert.Equal(t, "9191", cfg.Basic.Port, "environment wins over the file")
	assert.Equal(t, "Avery Quinn", cfg.Site.Title)
	assert.Equal(t, "fr", cfg.Site.Language.String())
	assert.Equal(t, 90*time.Second, cfg.HTTPCache.MaxAge)
	assert.False(t, cfg.Compression.Enabled)
	assert.Equal(t, "/doc/resume.pdf", cfg.Site.ResumePath, "defaults survive")
}

func TestReadYAMLRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  colour: red\n"), 0o600))

	cfg := &ServerConfig{}
	require.Error(t, cfg.readYAML(path))
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{}
	cfg.SetDefaults()

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "5m0s")
	assert.NotContains(t, string(out), "build")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	var back ServerConfig
	require.NoError(t, back.readYAML(path))
	assert.Equal(t, cfg.Site, back.Site)
	assert.Equal(t, cfg.HTTPCache, back.HTTPCache)
	assert.Equal(t, cfg.Compression, back.Compression)
}

func TestParseFileMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    os.FileMode
		wantErr bool
	}{
		{raw: "", want: 0o666},
		{raw: "660", want: 0o660},
		{raw: "0600", want: 0o600},
		{raw: "rw-rw----", want: 0o660},
		{raw: "rwxr-xr-x", want: 0o755},
		{raw: "999", wantErr: true},
		{raw: "rw-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := parseFileMode(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, errUnixSocketInvalidPermissions)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	u, err := ParseURL("https://example.com/base/", "test")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/base", u.String())

	_, err = ParseURL("example.com", "test")
	require.ErrorIs(t, err, errIncompleteURL)

	_, err = ParseURL("https://exa mple.com\x7f", "test")
	require.Error(t, err)
}

func TestShouldSkipServerLogging(t *testing.T) {
	t.Parallel()

	var prod, dev ServerConfig
	dev.Development.InDevelopment = true

	for _, path := range []string{"/css/site.css", "/js/motion.js", "/robots.txt", "/healthz", "/doc/resume.pdf"} {
		assert.True(t, prod.ShouldSkipServerLogging(path), path)
		assert.False(t, dev.ShouldSkipServerLogging(path), path)
	}

	for _, path := range []string{"/", "/work", "/work/trailhead"} {
		assert.False(t, prod.ShouldSkipServerLogging(path), path)
	}
}

func TestRevision(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", (&buildInfo{}).Revision())

	b := buildInfo{VcsRevision: "0123456789abcdef", VcsTime: "2025-04-01T10:00:00Z", VcsModified: true}
	assert.Equal(t, "2025-04-01-01234567+dirty", b.Revision())

	short := buildInfo{VcsRevision: "abc", VcsTime: "2025-04-01T10:00:00Z"}
	assert.Equal(t, "2025-04-01-abc", short.Revision())
}

func TestCondenseRequestLog(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"sys": "http", "kind": "page", "method": "GET",
		"status_code": 200, "url": "/work", "request_id": "x", "dur": 3,
	}
	require.NoError(t, condenseRequestLog(m))

	assert.Equal(t, "[page] 200 GET   /work", m["message"])
	assert.NotContains(t, m, "url")
	assert.Contains(t, m, "dur")

	other := map[string]any{"message": "hello"}
	require.NoError(t, condenseRequestLog(other))
	assert.Equal(t, "hello", other["message"])
}
