// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit records served requests as structured log events and
// Server-Timing metrics.
package audit

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger installs a readable console logger for the period before
// the configuration has been loaded.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
}
