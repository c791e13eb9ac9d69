// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"codeberg.org/portfolio/site/config"
)

// testConfigMutex serializes tests that mutate package state or config.Global.
var testConfigMutex sync.Mutex

// mockClock is a controllable replacement for timeNow.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *mockClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// setupLimiterTest locks the package state, installs test limiter settings and
// a mock clock, and restores everything when the test ends.
//
// Call it once per test. Subtests share the lock of their parent.
func setupLimiterTest(t *testing.T) *mockClock {
	t.Helper()

	testConfigMutex.Lock()

	origConfig := config.Global
	origTimeNow := timeNow

	config.Global.SetDefaults()
	config.Global.Limiter.Enabled = true
	config.Global.Limiter.IPv4Prefix = 24
	config.Global.Limiter.IPv6Prefix = 48
	config.Global.Limiter.PassIPs = nil
	config.Global.Limiter.BlockIPs = nil
	config.Global.Limiter.FilterLocal = true
	config.Global.Limiter.CheckHeaders = true
	config.Global.Limiter.Rate = 1
	config.Global.Limiter.Burst = 4
	config.Global.Limiter.SuspiciousRate = 0.5

	clock := &mockClock{now: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	timeNow = clock.Now

	limiters.Clear()
	lastCleanup.Store(0)

	t.Cleanup(func() {
		limiters.Clear()
		lastCleanup.Store(0)

		timeNow = origTimeNow
		config.Global = origConfig

		testConfigMutex.Unlock()
	})

	return clock
}

// browserRequest returns a page request carrying the headers of a desktop browser.
func browserRequest(path, remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.RemoteAddr = remoteAddr

	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0")
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	r.Header.Set("Accept-Language", "en-GB,en;q=0.5")
	r.Header.Set("Sec-Fetch-Dest", "document")
	r.Header.Set("Sec-Fetch-Mode", "navigate")
	r.Header.Set("Sec-Fetch-Site", "none")

	return r
}

// scriptRequest returns a page request as sent by curl.
func scriptRequest(path, remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.RemoteAddr = remoteAddr

	r.Header.Set("User-Agent", "curl/8.11.1")
	r.Header.Set("Accept", "*/*")

	return r
}
