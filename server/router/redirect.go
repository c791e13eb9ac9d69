// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/url"
)

// redirectTo permanently redirects to target, keeping the query string.
func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, withQuery(target, r), http.StatusPermanentRedirect)
	}
}

// redirectWithPathValue permanently redirects to targetPath followed by the
// named path wildcard.
//
// Example: /projects/{id} -> /work/{id}
func redirectWithPathValue(targetPath, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, withQuery(targetPath+url.PathEscape(r.PathValue(name)), r), http.StatusPermanentRedirect)
	}
}

func withQuery(target string, r *http.Request) string {
	if r.URL.RawQuery == "" {
		return target
	}

	return target + "?" + r.URL.RawQuery
}
