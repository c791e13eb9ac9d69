// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package rendercache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"codeberg.org/portfolio/site/config"
)

func newCache(t *testing.T, size int) *Cache {
	t.Helper()

	c, err := New(size)
	require.NoError(t, err)

	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -3} {
		c, err := New(size)
		require.ErrorIs(t, err, ErrInvalidSize)
		assert.Nil(t, c)
	}

	assert.Equal(t, 0, newCache(t, 2).Len())
}

func TestPutGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body []byte
	}{
		{"compressible", []byte(strings.Repeat("<li class=\"card\">project</li>", 200))},
		{"short", []byte("<p>x</p>")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCache(t, 2)
			c.Put("page", tt.body)

			got, ok := c.Get("page")
			require.True(t, ok)
			assert.Equal(t, len(tt.body), len(got))
			assert.True(t, bytes.Equal(tt.body, got))
		})
	}
}

func TestCompressesLargePages(t *testing.T) {
	t.Parallel()

	c := newCache(t, 1)
	body := []byte(strings.Repeat("<section>about</section>", 500))
	c.Put("about", body)

	ent := c.items["about"].Value.(*entry) //nolint:forcetypeassert // test
	assert.True(t, ent.compressed)
	assert.Less(t, len(ent.body), len(body))
}

func TestCopies(t *testing.T) {
	t.Parallel()

	c := newCache(t, 1)
	body := []byte("<p>original</p>")
	c.Put("k", body)
	body[0] = 'X'

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "<p>original</p>", string(got))

	got[0] = 'Y'

	again, _ := c.Get("k")
	assert.Equal(t, "<p>original</p>", string(again))
}

func TestEviction(t *testing.T) {
	t.Parallel()

	c := newCache(t, 2)
	assert.False(t, c.Put("/", []byte("a")))
	assert.False(t, c.Put("/work", []byte("b")))

	// Touch "/" so "/work" becomes the oldest.
	_, ok := c.Get("/")
	require.True(t, ok)

	assert.False(t, c.Put("/", []byte("a2")), "updating does not evict")
	assert.True(t, c.Put("/work/anvil", []byte("c")))

	assert.Equal(t, []string{"/", "/work/anvil"}, c.Keys())

	_, ok = c.Get("/work")
	assert.False(t, ok)

	got, _ := c.Get("/")
	assert.Equal(t, "a2", string(got))
}

func TestRemoveAndPurge(t *testing.T) {
	t.Parallel()

	c := newCache(t, 3)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
}

func TestStats(t *testing.T) {
	t.Parallel()

	c := newCache(t, 2)
	c.Put("a", []byte("1"))
	c.Get("a")
	c.Get("a")
	c.Get("b")

	assert.Equal(t, Stats{Entries: 1, Hits: 2, Misses: 1}, c.Stats())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := newCache(t, 8)

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Go(func() {
			for j := range 100 {
				key := strconv.Itoa((i + j) % 12)
				body := []byte(strings.Repeat(key, 64))

				c.Put(key, body)

				if got, ok := c.Get(key); ok {
					assert.Equal(t, strings.Repeat(key, 64), string(got))
				}
			}
		})
	}

	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}

func TestProperty_NeverExceedsSize(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 6).Draw(rt, "size")
		keys := rapid.SliceOf(rapid.StringMatching(`/[a-d]{1,2}`)).Draw(rt, "keys")

		c, err := New(size)
		require.NoError(rt, err)

		for _, k := range keys {
			c.Put(k, []byte(k))
			require.LessOrEqual(rt, c.Len(), size)

			got, ok := c.Get(k)
			require.True(rt, ok, "the newest key is always cached")
			require.Equal(rt, k, string(got))
		}
	})
}

func countingComponent(calls *atomic.Int32, body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		calls.Add(1)

		_, err := io.WriteString(w, body)

		return err
	})
}

// These swap Global, so they do not run in parallel.
func TestRender(t *testing.T) {
	saved := Global

	t.Cleanup(func() { Global = saved })

	Global = newCache(t, 4)

	var calls atomic.Int32

	page := countingComponent(&calls, "<main>work</main>")

	for range 3 {
		var buf bytes.Buffer
		require.NoError(t, Render(t.Context(), &buf, "/work", page))
		assert.Equal(t, "<main>work</main>", buf.String())
	}

	assert.Equal(t, int32(1), calls.Load())

	var buf bytes.Buffer
	require.NoError(t, Render(t.Context(), &buf, "", page))
	assert.Equal(t, int32(2), calls.Load(), "an empty key bypasses the cache")
}

func TestRenderErrorIsNotCached(t *testing.T) {
	saved := Global

	t.Cleanup(func() { Global = saved })

	Global = newCache(t, 4)

	errBroken := errors.New("broken template")
	broken := templ.ComponentFunc(func(context.Context, io.Writer) error { return errBroken })

	require.ErrorIs(t, Render(t.Context(), io.Discard, "/", broken), errBroken)
	assert.Equal(t, 0, Global.Len())
}

func TestSetup(t *testing.T) {
	savedGlobal, savedCfg := Global, config.Global.RenderCache

	t.Cleanup(func() {
		Global = savedGlobal
		config.Global.RenderCache = savedCfg
	})

	config.Global.RenderCache.Enabled = false
	require.NoError(t, Setup())
	assert.Nil(t, Global)

	var calls atomic.Int32

	require.NoError(t, Render(t.Context(), io.Discard, "/", countingComponent(&calls, "x")))
	require.NoError(t, Render(t.Context(), io.Discard, "/", countingComponent(&calls, "x")))
	assert.Equal(t, int32(2), calls.Load())

	config.Global.RenderCache.Enabled = true
	config.Global.RenderCache.Size = 3
	require.NoError(t, Setup())
	require.NotNil(t, Global)
	assert.Equal(t, 3, Global.size)

	config.Global.RenderCache.Size = 0
	require.ErrorIs(t, Setup(), ErrInvalidSize)
}
