// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/server/routes"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRateLimitStatus    = "RateLimit-Status" // Non-standard.
)

// isExcludedPath reports whether the path bypasses the limiter entirely.
func isExcludedPath(path string) bool {
	return config.IsStaticPath(path) || path == "/healthz"
}

// Evaluate is the entrypoint to the limiter middleware.
//
// Requests pass through these steps in order:
//  1. static assets and the health probe are never filtered
//  2. the pass list serves, the block list answers 403
//  3. local clients are served unless FilterLocal is set
//  4. header heuristics mark automated clients as suspicious
//  5. the network's token bucket is charged; an empty bucket answers 429
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	defer DoCleanup()

	if isExcludedPath(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	client, err := newClientInfo(r)
	if err != nil {
		log.Warn().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Msg("Serving request without rate limiting")
		next.ServeHTTP(w, r)

		return
	}

	if allowed, blocked := client.checkIPLists(); allowed {
		next.ServeHTTP(w, r)

		return
	} else if blocked {
		log.Warn().
			Str("ip", client.ip.String()).
			Str("network", client.network.String()).
			Msg("Request blocked, IP in block-list")

		routes.BlockPage(w, r, http.StatusForbidden)

		return
	}

	if !config.Global.Limiter.FilterLocal && client.isLocal() {
		next.ServeHTTP(w, r)

		return
	}

	client.assess(r)

	if !client.charge() {
		log.Warn().
			Str("ip", client.ip.String()).
			Str("network", client.network.String()).
			Bool("suspicious", client.isSuspicious).
			Str("reason", client.reason).
			Msg("Request blocked, exceeded rate limit")

		addRateLimitHeaders(w, client)
		setVaryHeaders(w)
		routes.BlockPage(w, r, http.StatusTooManyRequests)

		return
	}

	addRateLimitHeaders(w, client)
	setVaryHeaders(w)
	next.ServeHTTP(w, r)
}

// addRateLimitHeaders describes the client's bucket in the response headers.
func addRateLimitHeaders(w http.ResponseWriter, client *clientInfo) {
	if client == nil || client.bucket == nil {
		return
	}

	q := client.bucket.quota()
	reset := strconv.FormatInt(q.reset, 10)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(q.limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(q.remaining))
	w.Header().Set(HeaderRateLimitReset, reset)

	if q.remaining == 0 {
		w.Header().Set("Retry-After", reset)
	}

	status := "Normal"
	if q.suspicious {
		status = "Suspicious"
	}

	w.Header().Set(HeaderRateLimitStatus, status)
}

// setVaryHeaders lists the request headers the limiter's decision depends on.
func setVaryHeaders(w http.ResponseWriter) {
	w.Header().Add("Vary", "User-Agent, Accept, Accept-Encoding, Accept-Language, Sec-Fetch-Dest, Sec-Fetch-Mode, Sec-Fetch-Site")
}
