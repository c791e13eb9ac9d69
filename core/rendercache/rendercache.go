// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package rendercache keeps rendered pages in memory.

Pages depend only on the loaded content and configuration, so once rendered
they can be served again without running their templates. Bodies are stored
zstd-compressed when that makes them smaller, and the least recently used page
is evicted when the cache is full.
*/
package rendercache

import (
	"bytes"
	"container/list"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/a-h/templ"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/config"
)

// ErrInvalidSize is returned by New and Setup when the cache size is not positive.
var ErrInvalidSize = errors.New("render cache size must be positive")

// Global is the cache Render uses. Nil disables caching.
var Global *Cache

// Cache is a fixed-capacity LRU of page bodies, safe for concurrent use.
// Construct it with New.
type Cache struct {
	size  int
	order *list.List // front is most recently used
	items map[string]*list.Element
	mu    sync.Mutex

	enc *zstd.Encoder
	dec *zstd.Decoder

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	key        string
	body       []byte
	compressed bool
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// New returns an empty cache holding at most size pages.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	// nil writer and reader: only EncodeAll and DecodeAll are used.
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &Cache{
		size:  size,
		order: list.New(),
		items: make(map[string]*list.Element),
		enc:   enc,
		dec:   dec,
	}, nil
}

// Setup builds Global from the RenderCache configuration.
func Setup() error {
	if !config.Global.RenderCache.Enabled {
		Global = nil

		log.Info().Msg("Render cache is disabled")

		return nil
	}

	c, err := New(config.Global.RenderCache.Size)
	if err != nil {
		return err
	}

	Global = c

	log.Info().
		Int("size", config.Global.RenderCache.Size).
		Msg("Initialized render cache")

	return nil
}

// Put stores a copy of body under key and reports whether another page was evicted.
func (c *Cache) Put(key string, body []byte) bool {
	stored, compressed := c.pack(body)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)

		ent := el.Value.(*entry) //nolint:forcetypeassert // only *entry is stored
		ent.body, ent.compressed = stored, compressed

		return false
	}

	c.items[key] = c.order.PushFront(&entry{key: key, body: stored, compressed: compressed})

	if c.order.Len() <= c.size {
		return false
	}

	oldest := c.order.Back()
	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*entry).key) //nolint:forcetypeassert // only *entry is stored

	return true
}

// Get returns a copy of the page stored under key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()

	el, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	c.order.MoveToFront(el)

	ent := el.Value.(*entry) //nolint:forcetypeassert // only *entry is stored
	stored, compressed := ent.body, ent.compressed

	c.mu.Unlock()

	body, err := c.unpack(stored, compressed)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dropping unreadable cached page")
		c.Remove(key)
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return body, true
}

// Remove deletes key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}

	c.order.Remove(el)
	delete(c.items, key)

	return true
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.items)
}

// Keys returns the cached keys from oldest to newest.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.order.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key) //nolint:forcetypeassert // only *entry is stored
	}

	return keys
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Stats returns the current entry count and the hit and miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Entries: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// pack compresses body when that saves space, and copies it otherwise.
// It runs outside the lock; EncodeAll is safe for concurrent use.
func (c *Cache) pack(body []byte) ([]byte, bool) {
	if len(body) == 0 {
		return nil, false
	}

	if packed := c.enc.EncodeAll(body, nil); len(packed) < len(body) {
		return packed, true
	}

	return bytes.Clone(body), false
}

func (c *Cache) unpack(stored []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return bytes.Clone(stored), nil
	}

	return c.dec.DecodeAll(stored, nil)
}

// Render writes component to w, serving it from Global when key is cached.
// Without a cache, or with an empty key, the component is rendered directly.
func Render(ctx context.Context, w io.Writer, key string, component templ.Component) error {
	c := Global
	if c == nil || key == "" {
		return component.Render(ctx, w)
	}

	if body, ok := c.Get(key); ok {
		_, err := w.Write(body)

		return err
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}

	c.Put(key, buf.Bytes())

	_, err := w.Write(buf.Bytes())

	return err
}
