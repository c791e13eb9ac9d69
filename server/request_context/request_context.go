// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context carries per-request state through the middleware chain.

It is separate from package middleware so that routes can read the state
without an import cycle.
*/
package request_context

import (
	"context"
	"net/http"

	"codeberg.org/portfolio/site/core/idgen"
)

// RequestContext is the state of one request.
type RequestContext struct {
	// RequestID identifies the request in logs and on error pages.
	RequestID string

	// RequestError is set by middleware.CatchError when a handler fails.
	RequestError error

	// StatusCode is the status sent to the client. Defaults to 200 OK.
	StatusCode int

	// Path is the request path after URL normalization.
	Path string
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext attaches a fresh RequestContext for r to ctx.
func WithRequestContext(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestContextKey, &RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		Path:       r.URL.Path,
	})
}

// FromContext returns the RequestContext in ctx, or a zero value when there is none.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{}
}

// FromRequest is FromContext for r's context.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
