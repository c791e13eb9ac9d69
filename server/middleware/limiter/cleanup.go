// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// lastCleanup holds the UnixNano time of the last cleanup run.
var lastCleanup atomic.Int64

// DoCleanup removes expired buckets in the background, at most once per
// CleanupInterval. The first call only starts the clock.
func DoCleanup() {
	now := timeNow()
	last := lastCleanup.Load()

	if last == 0 {
		lastCleanup.CompareAndSwap(0, now.UnixNano())

		return
	}

	if now.Sub(time.Unix(0, last)) < CleanupInterval {
		return
	}

	if !lastCleanup.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	go func() {
		removed := cleanupExpiredLimiters()

		log.Debug().
			Int("removed", removed).
			Dur("dur", time.Since(now)).
			Msg("Limiter cleanup")
	}()
}
