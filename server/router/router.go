// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"codeberg.org/portfolio/site/server/middleware"
)

// Router is an http.ServeMux behind a middleware chain.
type Router struct {
	*http.ServeMux

	middlewares []middleware.Middleware
	handler     http.Handler
}

// NewRouter returns a Router with no routes and no middleware.
func NewRouter() *Router {
	mux := http.NewServeMux()

	return &Router{
		ServeMux: mux,
		handler:  mux,
	}
}

// Use appends m to the chain. The first middleware added runs first.
// Call it before serving.
func (router *Router) Use(m middleware.Middleware) {
	router.middlewares = append(router.middlewares, m)
	router.handler = middleware.Chain(router.ServeMux, router.middlewares...)
}

// ServeHTTP runs the middleware chain, then the mux.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.handler.ServeHTTP(w, r)
}
