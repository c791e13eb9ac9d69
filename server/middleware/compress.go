// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress returns a middleware that gzips responses of at least minSize
// bytes for clients that accept it.
func Compress(level, minSize int) (Middleware, error) {
	wrap, err := gzhttp.NewWrapper(
		gzhttp.CompressionLevel(level),
		gzhttp.MinSize(minSize),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring compression: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		wrap(next).ServeHTTP(w, r)
	}, nil
}
