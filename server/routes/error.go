// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/assets/views"
	"codeberg.org/portfolio/site/server/request_context"
)

// ErrorPage renders the fallback page for the status recorded in the request context.
// The caller has already written the status line, after SetErrorHeaders.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	ctx := request_context.FromRequest(r)

	renderError(w, r, views.ErrorData{StatusCode: ctx.StatusCode, RequestID: ctx.RequestID})
}

// BlockPage answers a request the limiter refused.
func BlockPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	message := ""
	if statusCode == http.StatusForbidden {
		message = "Requests from your network are not accepted."
	}

	statusPage(w, r, statusCode, message)
}

// StatusPage writes statusCode and renders the error page for it.
func StatusPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	statusPage(w, r, statusCode, "")
}

func statusPage(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	ctx := request_context.FromRequest(r)
	ctx.StatusCode = statusCode

	SetErrorHeaders(w)
	w.WriteHeader(statusCode)

	renderError(w, r, views.ErrorData{StatusCode: statusCode, Message: message, RequestID: ctx.RequestID})
}

// SetErrorHeaders prepares the headers of an error response. Error pages are never cached.
func SetErrorHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
}

func renderError(w http.ResponseWriter, r *http.Request, data views.ErrorData) {
	if err := views.Error(pageData(r), data).Render(r.Context(), w); err != nil {
		log.Err(err).
			Str("request_id", data.RequestID).
			Int("status_code", data.StatusCode).
			Msg("Failed to render the error page")
	}
}
