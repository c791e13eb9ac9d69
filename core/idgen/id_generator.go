// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for requests and asset cache busting.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// entropyBytes encodes to four base64 characters.
const entropyBytes = 3

// Make returns an ID made of the current wall-clock time (HHMMSS) followed by
// four URL-safe random characters.
func Make() string {
	return makeAt(time.Now())
}

func makeAt(t time.Time) string {
	var entropy [entropyBytes]byte

	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(entropy[:])

	return t.Format("150405") + base64.RawURLEncoding.EncodeToString(entropy[:])
}
