// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"

	"codeberg.org/portfolio/site/config"
)

// NormalizeURL redirects page paths with a trailing slash to the same path
// without it. The root path and static asset paths are left alone.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !hasTrailingSlash(r) || config.IsStaticPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	target := *r.URL
	// A leading "//" would make the Location protocol-relative.
	target.Path = "/" + strings.Trim(target.Path, "/")
	target.RawPath = ""
	target.Scheme = ""
	target.Host = ""

	http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
}

func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}
