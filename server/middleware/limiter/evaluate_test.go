// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"codeberg.org/portfolio/site/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func evaluate(r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	Evaluate(rr, r, okHandler)

	return rr
}

func TestEvaluate(t *testing.T) {
	setupLimiterTest(t)

	tests := []struct {
		name        string
		request     *http.Request
		passIPs     []string
		blockIPs    []string
		filterLocal bool
		status      int
		rateStatus  string
		limit       string
	}{
		{
			name:    "static assets bypass the limiter",
			request: scriptRequest("/css/site.css", "203.0.113.5:40000"),
			status:  http.StatusOK,
		},
		{
			name:    "health probe bypasses the limiter",
			request: scriptRequest("/healthz", "203.0.113.5:40000"),
			status:  http.StatusOK,
		},
		{
			name:     "pass list wins over block list",
			request:  scriptRequest("/work", "198.51.100.7:40000"),
			passIPs:  []string{"198.51.100.7"},
			blockIPs: []string{"198.51.100.0/24"},
			status:   http.StatusOK,
		},
		{
			name:     "block list",
			request:  browserRequest("/work", "198.51.100.8:40000"),
			blockIPs: []string{"198.51.100.0/24"},
			status:   http.StatusForbidden,
		},
		{
			name:    "local clients are not limited",
			request: scriptRequest("/", "127.0.0.1:50000"),
			status:  http.StatusOK,
		},
		{
			name:        "local clients are limited when filtering local",
			request:     browserRequest("/", "[::1]:50000"),
			filterLocal: true,
			status:      http.StatusOK,
			rateStatus:  "Normal",
			limit:       "4",
		},
		{
			name:       "browser",
			request:    browserRequest("/work/trailhead", "192.0.2.10:40000"),
			status:     http.StatusOK,
			rateStatus: "Normal",
			limit:      "4",
		},
		{
			name:       "script is slowed down, not blocked",
			request:    scriptRequest("/work", "203.0.113.9:40000"),
			status:     http.StatusOK,
			rateStatus: "Suspicious",
			limit:      "2",
		},
		{
			name:    "unparseable client address is served",
			request: browserRequest("/", "@"),
			status:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.Global.Limiter.PassIPs = tt.passIPs
			config.Global.Limiter.BlockIPs = tt.blockIPs
			config.Global.Limiter.FilterLocal = tt.filterLocal

			rr := evaluate(tt.request)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.rateStatus, rr.Header().Get(HeaderRateLimitStatus))
			assert.Equal(t, tt.limit, rr.Header().Get(HeaderRateLimitLimit))

			if tt.rateStatus != "" {
				assert.Contains(t, rr.Header().Get("Vary"), "User-Agent")
			}
		})
	}
}

func TestEvaluateRateLimit(t *testing.T) {
	clock := setupLimiterTest(t)

	// Addresses in the same /24 share a bucket.
	for i, addr := range []string{"203.0.113.1:1", "203.0.113.2:1", "203.0.113.3:1", "203.0.113.4:1"} {
		rr := evaluate(browserRequest("/", addr))
		assert.Equal(t, http.StatusOK, rr.Code, "request %d", i)
		assert.Equal(t, "Normal", rr.Header().Get(HeaderRateLimitStatus))
	}

	rr := evaluate(browserRequest("/", "203.0.113.5:1"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "0", rr.Header().Get(HeaderRateLimitRemaining))
	assert.Equal(t, "4", rr.Header().Get(HeaderRateLimitReset))
	assert.Equal(t, "4", rr.Header().Get("Retry-After"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Body.String(), "Slow down")

	assert.Equal(t, http.StatusOK, evaluate(browserRequest("/", "198.51.100.1:1")).Code,
		"other networks are unaffected")

	clock.Sleep(2 * time.Second)

	rr = evaluate(browserRequest("/", "203.0.113.5:1"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get(HeaderRateLimitRemaining))
}
