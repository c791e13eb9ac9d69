// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/core/audit"
	"codeberg.org/portfolio/site/server/request_context"
	"codeberg.org/portfolio/site/server/routes"
)

// Handler is a route handler that can fail.
type Handler func(w http.ResponseWriter, r *http.Request) error

// CatchError adapts a page handler. See CatchErrorAs.
func CatchError(handler Handler) http.HandlerFunc {
	return CatchErrorAs(audit.Page, handler)
}

// CatchErrorAs adapts handler to http.HandlerFunc, buffering its response.
//
// When the handler fails without writing an error status, or writes 404, the
// buffered response is discarded and the error page is rendered instead with
// 500 or 404. Any other response is passed through unchanged.
//
// Every request is logged through an audit span of the given kind, unless
// config.ServerConfig.ShouldSkipServerLogging says otherwise.
func CatchErrorAs(kind audit.Kind, handler Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Kind:      kind,
			RequestID: ctx.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		ctx.RequestError = handler(recorder, r)

		// Server-Timing is sent with the status line.
		span.End()

		if recorder.Code == 0 {
			recorder.Code = http.StatusOK
		}

		sw := &sizeWriter{ResponseWriter: w}

		switch {
		case (ctx.RequestError != nil && recorder.Code < http.StatusBadRequest) || recorder.Code == http.StatusNotFound:
			ctx.StatusCode = http.StatusInternalServerError
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			}

			routes.SetErrorHeaders(sw)
			sw.WriteHeader(ctx.StatusCode)
			routes.ErrorPage(sw, r)

		default:
			ctx.StatusCode = recorder.Code
			maps.Copy(sw.Header(), recorder.Header())
			sw.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(sw); err != nil {
				log.Err(err).Str("request_id", ctx.RequestID).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Size = sw.size
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// sizeWriter counts the body bytes written through it.
type sizeWriter struct {
	http.ResponseWriter
	size int
}

func (w *sizeWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n

	return n, err
}
