// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/portfolio/site/config"
)

// The gap between RestrictThreshold and RelaxThreshold keeps a network from
// flapping between buckets.
const (
	LimiterExpiryDuration   = time.Hour       // How long an idle network's bucket is kept.
	CleanupInterval         = 5 * time.Minute // Minimum time between cleanup runs.
	MaxNetworkClientHistory = 60              // Requests remembered per network.
	RestrictThreshold       = 0.6             // Suspicious share that switches a network to the slow bucket.
	RelaxThreshold          = 0.2             // Suspicious share that switches it back.

	stateDirPermissions = 0o700
)

var (
	limiters sync.Map   // network string -> *bucket
	timeNow  = time.Now // replaced in tests
)

// bucketParams are the token bucket settings for one class of network.
type bucketParams struct {
	Rate  float64
	Burst int
}

func regularParams() bucketParams {
	return bucketParams{Rate: config.Global.Limiter.Rate, Burst: config.Global.Limiter.Burst}
}

func suspiciousParams() bucketParams {
	return bucketParams{
		Rate:  config.Global.Limiter.SuspiciousRate,
		Burst: max(1, config.Global.Limiter.Burst/2),
	}
}

// clientHistory is a ring buffer of the suspicious flags of recent requests.
type clientHistory struct {
	Statuses   []bool `json:"statuses"`
	Index      int    `json:"index"`
	Count      int    `json:"count"`
	Suspicious int    `json:"suspicious"`
}

// add records one request, evicting the oldest once the buffer is full.
func (h *clientHistory) add(suspicious bool) {
	if len(h.Statuses) != MaxNetworkClientHistory {
		*h = clientHistory{Statuses: make([]bool, MaxNetworkClientHistory)}
	}

	if h.Count == MaxNetworkClientHistory {
		if h.Statuses[h.Index] {
			h.Suspicious--
		}
	} else {
		h.Count++
	}

	h.Statuses[h.Index] = suspicious
	if suspicious {
		h.Suspicious++
	}

	h.Index = (h.Index + 1) % MaxNetworkClientHistory
}

// verdict reports whether the network should move to the regular (relax) or
// suspicious (restrict) bucket. Nothing changes until the buffer is full.
func (h clientHistory) verdict() (relax, restrict bool) {
	if h.Count < MaxNetworkClientHistory {
		return false, false
	}

	ratio := float64(h.Suspicious) / float64(h.Count)

	return ratio <= RelaxThreshold, ratio >= RestrictThreshold
}

// bucket is the rate limiter shared by one network.
type bucket struct {
	mu           sync.Mutex
	limiter      *rate.Limiter
	network      string
	lastAccess   time.Time
	history      clientHistory
	isSuspicious bool
}

func newBucket(network string, suspicious bool) *bucket {
	params := regularParams()
	if suspicious {
		params = suspiciousParams()
	}

	return &bucket{
		limiter:      rate.NewLimiter(rate.Limit(params.Rate), params.Burst),
		network:      network,
		lastAccess:   timeNow(),
		isSuspicious: suspicious,
		history:      clientHistory{Statuses: make([]bool, MaxNetworkClientHistory)},
	}
}

// getOrCreateBucket returns the network's bucket. A new bucket starts in the
// class of its first request.
func getOrCreateBucket(network string, suspicious bool) *bucket {
	if v, ok := limiters.Load(network); ok {
		if b, ok := v.(*bucket); ok {
			return b
		}
	}

	v, _ := limiters.LoadOrStore(network, newBucket(network, suspicious))

	b, _ := v.(*bucket)

	return b
}

// observe records a request's suspicious flag and switches the bucket's
// class when the history crosses a threshold.
func (b *bucket) observe(suspicious bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.add(suspicious)

	relax, restrict := b.history.verdict()

	switch {
	case relax && b.isSuspicious:
		b.apply(regularParams())
		b.isSuspicious = false

		log.Info().
			Str("network", b.network).
			Msg("Relaxed rate limit for network")
	case restrict && !b.isSuspicious:
		b.apply(suspiciousParams())
		b.isSuspicious = true

		log.Warn().
			Str("network", b.network).
			Msg("Restricted rate limit for network")
	}
}

func (b *bucket) apply(p bucketParams) {
	now := timeNow()
	b.limiter.SetLimitAt(now, rate.Limit(p.Rate))
	b.limiter.SetBurstAt(now, p.Burst)
}

// allow takes one token, reporting whether the request may proceed.
func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := timeNow()
	b.lastAccess = now

	return b.limiter.AllowN(now, 1)
}

// quota describes the bucket for the RateLimit response headers.
type quota struct {
	limit      int
	remaining  int
	reset      int64
	suspicious bool
}

func (b *bucket) quota() quota {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := timeNow()
	tokens := b.limiter.TokensAt(now)
	burst := b.limiter.Burst()
	limit := float64(b.limiter.Limit())

	q := quota{
		limit:      burst,
		remaining:  max(0, min(burst, int(tokens))),
		suspicious: b.isSuspicious,
	}

	if deficit := float64(burst) - tokens; deficit > 0 && limit > 0 {
		q.reset = int64(math.Ceil(deficit / limit))
	}

	return q
}

// savedBucket is the JSON form of a bucket.
type savedBucket struct {
	Network      string        `json:"network"`
	LastAccess   time.Time     `json:"last_access"`
	History      clientHistory `json:"history"`
	IsSuspicious bool          `json:"is_suspicious"`
	Rate         float64       `json:"rate"`
	Burst        int           `json:"burst"`
}

// Save writes every bucket to w as a JSON array.
func Save(w io.Writer) error {
	state := []savedBucket{}

	limiters.Range(func(_, value any) bool {
		b, ok := value.(*bucket)
		if !ok {
			return true
		}

		b.mu.Lock()
		state = append(state, savedBucket{
			Network:      b.network,
			LastAccess:   b.lastAccess,
			History:      b.history,
			IsSuspicious: b.isSuspicious,
			Rate:         float64(b.limiter.Limit()),
			Burst:        b.limiter.Burst(),
		})
		b.mu.Unlock()

		return true
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("encoding limiter state: %w", err)
	}

	log.Info().Int("count", len(state)).Msg("Saved limiter state")

	return nil
}

// Load replaces the in-memory buckets with the state read from r.
// An empty input leaves a fresh state.
func Load(r io.Reader) error {
	var state []savedBucket

	if err := json.NewDecoder(r).Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("decoding limiter state: %w", err)
	}

	limiters.Clear()

	for _, s := range state {
		history := s.History
		if len(history.Statuses) != MaxNetworkClientHistory {
			history = clientHistory{Statuses: make([]bool, MaxNetworkClientHistory)}
		}

		limiters.Store(s.Network, &bucket{
			limiter:      rate.NewLimiter(rate.Limit(s.Rate), s.Burst),
			network:      s.Network,
			lastAccess:   s.LastAccess,
			history:      history,
			isSuspicious: s.IsSuspicious,
		})
	}

	log.Info().Int("count", len(state)).Msg("Loaded limiter state")

	return nil
}

// Init loads the saved state from the configured file, if there is one.
func Init() {
	path := config.Global.Limiter.StateFilepath

	file, err := os.Open(path) // #nosec G304 -- configured by the operator
	if os.IsNotExist(err) {
		log.Info().Str("file", path).Msg("No limiter state file, starting fresh")

		return
	}

	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Could not open limiter state file, starting fresh")

		return
	}
	defer file.Close()

	if err := Load(file); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Could not parse limiter state file, starting fresh")
	}
}

// Fini saves the state to the configured file.
func Fini() error {
	path := config.Global.Limiter.StateFilepath

	if err := os.MkdirAll(filepath.Dir(path), stateDirPermissions); err != nil {
		return fmt.Errorf("creating limiter state directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- configured by the operator
	if err != nil {
		return fmt.Errorf("creating limiter state file: %w", err)
	}

	if err := Save(file); err != nil {
		_ = file.Close()

		return err
	}

	return file.Close()
}

// cleanupExpiredLimiters drops buckets idle for longer than LimiterExpiryDuration.
func cleanupExpiredLimiters() int {
	now := timeNow()
	removed := 0

	limiters.Range(func(key, value any) bool {
		b, ok := value.(*bucket)
		if !ok {
			limiters.Delete(key)
			removed++

			return true
		}

		b.mu.Lock()
		idle := now.Sub(b.lastAccess)
		b.mu.Unlock()

		if idle > LimiterExpiryDuration {
			limiters.Delete(key)
			removed++
		}

		return true
	})

	return removed
}
