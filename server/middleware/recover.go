// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/server/routes"
)

// Recover turns a panic further down the chain into a logged 500 response.
//
// http.ErrAbortHandler is re-raised so that net/http can abort the response.
// Handlers adapted by CatchError buffer their output, so nothing has reached
// the client when they panic.
func Recover(w http.ResponseWriter, r *http.Request, next http.Handler) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
			panic(rec)
		}

		log.Error().
			Str("sys", "http").
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("panic", fmt.Sprint(rec)).
			Bytes("stack", debug.Stack()).
			Msg("Recovered from panic")

		routes.StatusPage(w, r, http.StatusInternalServerError)
	}()

	next.ServeHTTP(w, r)
}
