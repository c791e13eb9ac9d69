// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"pgregory.net/rapid"

	"codeberg.org/portfolio/site/config"
)

func TestClientHistory(t *testing.T) {
	t.Parallel()

	var h clientHistory

	for range MaxNetworkClientHistory - 1 {
		h.add(true)
	}

	relax, restrict := h.verdict()
	assert.False(t, relax)
	assert.False(t, restrict, "no verdict before the buffer is full")

	h.add(true)

	relax, restrict = h.verdict()
	assert.False(t, relax)
	assert.True(t, restrict)
	assert.Equal(t, MaxNetworkClientHistory, h.Suspicious)

	for range MaxNetworkClientHistory {
		h.add(false)
	}

	relax, restrict = h.verdict()
	assert.True(t, relax)
	assert.False(t, restrict)
	assert.Zero(t, h.Suspicious)
	assert.Equal(t, MaxNetworkClientHistory, h.Count)
}

func TestProperty_ClientHistoryCountsWindow(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		flags := rapid.SliceOfN(rapid.Bool(), 0, 3*MaxNetworkClientHistory).Draw(rt, "flags")

		var h clientHistory
		for _, f := range flags {
			h.add(f)
		}

		window := flags[max(0, len(flags)-MaxNetworkClientHistory):]

		want := 0
		for _, f := range window {
			if f {
				want++
			}
		}

		require.Equal(rt, len(window), h.Count)
		require.Equal(rt, want, h.Suspicious)
	})
}

func TestBucketAllow(t *testing.T) {
	clock := setupLimiterTest(t)

	b := getOrCreateBucket("203.0.113.0/24", false)

	for i := range 4 {
		assert.True(t, b.allow(), "request %d", i)
	}

	assert.False(t, b.allow(), "burst exhausted")

	q := b.quota()
	assert.Equal(t, 4, q.limit)
	assert.Zero(t, q.remaining)
	assert.Equal(t, int64(4), q.reset)
	assert.False(t, q.suspicious)

	clock.Sleep(time.Second)
	assert.True(t, b.allow(), "one token refilled")

	assert.Same(t, b, getOrCreateBucket("203.0.113.0/24", true), "existing bucket is reused")
}

func TestSuspiciousBucket(t *testing.T) {
	setupLimiterTest(t)

	b := getOrCreateBucket("198.51.100.0/24", true)

	assert.True(t, b.allow())
	assert.True(t, b.allow())
	assert.False(t, b.allow())

	q := b.quota()
	assert.Equal(t, 2, q.limit)
	assert.True(t, q.suspicious)
	assert.Equal(t, int64(4), q.reset, "two tokens at half a token per second")
}

func TestBucketSwitchesClass(t *testing.T) {
	setupLimiterTest(t)

	b := getOrCreateBucket("203.0.113.0/24", false)

	for range MaxNetworkClientHistory {
		b.observe(true)
	}

	assert.True(t, b.isSuspicious)
	assert.Equal(t, 2, b.limiter.Burst())
	assert.InDelta(t, 0.5, float64(b.limiter.Limit()), 1e-9)

	// 12 of 60 is at the relax threshold.
	for range MaxNetworkClientHistory - 12 {
		b.observe(false)
	}

	assert.False(t, b.isSuspicious)
	assert.Equal(t, 4, b.limiter.Burst())
	assert.InDelta(t, 1.0, float64(b.limiter.Limit()), 1e-9)
}

func TestSaveLoad(t *testing.T) {
	setupLimiterTest(t)

	regular := getOrCreateBucket("203.0.113.0/24", false)
	regular.observe(true)
	regular.allow()

	getOrCreateBucket("2001:db8::/48", true)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf))

	saved := buf.String()
	require.True(t, gjson.Valid(saved), saved)
	assert.Equal(t, int64(2), gjson.Get(saved, "#").Int())
	assert.Equal(t, int64(1),
		gjson.Get(saved, `#(network=="203.0.113.0/24").history.suspicious`).Int())
	assert.True(t, gjson.Get(saved, `#(network=="2001:db8::/48").is_suspicious`).Bool())

	limiters.Clear()
	getOrCreateBucket("192.0.2.0/24", false)

	require.NoError(t, Load(strings.NewReader(saved)))

	_, stale := limiters.Load("192.0.2.0/24")
	assert.False(t, stale, "Load replaces the existing state")

	v, ok := limiters.Load("203.0.113.0/24")
	require.True(t, ok)

	restored, ok := v.(*bucket)
	require.True(t, ok)
	assert.Equal(t, 1, restored.history.Suspicious)
	assert.Equal(t, 1, restored.history.Count)
	assert.Equal(t, 4, restored.limiter.Burst())
	assert.False(t, restored.isSuspicious)

	v, ok = limiters.Load("2001:db8::/48")
	require.True(t, ok)

	restored, ok = v.(*bucket)
	require.True(t, ok)
	assert.True(t, restored.isSuspicious)
	assert.Equal(t, 2, restored.limiter.Burst())
}

func TestLoad(t *testing.T) {
	setupLimiterTest(t)

	require.NoError(t, Load(strings.NewReader("")), "empty input is a fresh state")
	require.Error(t, Load(strings.NewReader("{not json")))

	require.NoError(t, Load(strings.NewReader(`[{"network":"203.0.113.0/24","rate":1,"burst":4,"history":{"statuses":[true]}}]`)))

	v, ok := limiters.Load("203.0.113.0/24")
	require.True(t, ok)

	b, ok := v.(*bucket)
	require.True(t, ok)
	assert.Len(t, b.history.Statuses, MaxNetworkClientHistory, "short history is reset")
	assert.Zero(t, b.history.Count)
}

func TestInitFini(t *testing.T) {
	setupLimiterTest(t)

	path := filepath.Join(t.TempDir(), "state", "limiter.json")
	config.Global.Limiter.StateFilepath = path

	Init()

	_, ok := limiters.Load("anything")
	assert.False(t, ok)

	getOrCreateBucket("203.0.113.0/24", false)
	require.NoError(t, Fini())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.0/24", gjson.GetBytes(data, "0.network").String())

	limiters.Clear()
	Init()

	_, ok = limiters.Load("203.0.113.0/24")
	assert.True(t, ok)
}

func TestCleanupExpiredLimiters(t *testing.T) {
	clock := setupLimiterTest(t)

	getOrCreateBucket("203.0.113.0/24", false)
	clock.Sleep(LimiterExpiryDuration + time.Minute)

	fresh := getOrCreateBucket("198.51.100.0/24", false)
	fresh.allow()

	assert.Equal(t, 1, cleanupExpiredLimiters())

	_, ok := limiters.Load("203.0.113.0/24")
	assert.False(t, ok)

	_, ok = limiters.Load("198.51.100.0/24")
	assert.True(t, ok)
}

func TestDoCleanup(t *testing.T) {
	clock := setupLimiterTest(t)

	getOrCreateBucket("203.0.113.0/24", false)

	DoCleanup()

	started := lastCleanup.Load()
	assert.Equal(t, clock.Now().UnixNano(), started)

	clock.Sleep(time.Minute)
	DoCleanup()
	assert.Equal(t, started, lastCleanup.Load(), "too soon for another run")

	clock.Sleep(LimiterExpiryDuration)
	DoCleanup()
	assert.Equal(t, clock.Now().UnixNano(), lastCleanup.Load())

	assert.Eventually(t, func() bool {
		_, ok := limiters.Load("203.0.113.0/24")

		return !ok
	}, time.Second, 10*time.Millisecond)
}
