// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"slices"
	"strings"
)

var (
	// acceptedEncodings lists content codings of which a browser accepts at least one.
	acceptedEncodings = []string{"identity", "gzip", "deflate", "br", "zstd"}

	// requiredSecFetchHeaders must be present on secure requests.
	requiredSecFetchHeaders = []string{"Sec-Fetch-Dest", "Sec-Fetch-Mode", "Sec-Fetch-Site"}

	// crawlerSubstrings identify search engine and link preview crawlers.
	// They skip the header heuristics so the site stays indexable, but are
	// still rate limited.
	crawlerSubstrings = []string{
		"applebot",
		"bingbot",
		"discordbot",
		"duckduckbot",
		"facebookexternalhit",
		"googlebot",
		"linkedinbot",
		"slackbot",
		"twitterbot",
		"yandexbot",
	}

	// automationSubstrings identify HTTP libraries, headless browsers and scrapers.
	automationSubstrings = []string{
		"ahrefsbot",
		"curl",
		"go-http-client",
		"headlesschrome",
		"httpclient",
		"java",
		"libwww-perl",
		"mj12bot",
		"okhttp",
		"petalbot",
		"python",
		"scrapy",
		"semrushbot",
		"wget",
	}
)

// suspiciousHeaders inspects the headers of a page request and returns why
// it looks automated, or "" when it looks like a browser or a known crawler.
func suspiciousHeaders(r *http.Request) string {
	userAgent := strings.ToLower(r.Header.Get("User-Agent"))
	if userAgent == "" {
		return "missing User-Agent"
	}

	if containsAny(userAgent, crawlerSubstrings) {
		return ""
	}

	if containsAny(userAgent, automationSubstrings) {
		return "automated User-Agent"
	}

	accept := r.Header.Get("Accept")
	if !strings.Contains(accept, "text/html") && !strings.Contains(accept, "*/*") {
		return "Accept does not allow HTML"
	}

	if !containsAny(strings.ToLower(r.Header.Get("Accept-Encoding")), acceptedEncodings) {
		return "unusual Accept-Encoding"
	}

	if strings.TrimSpace(r.Header.Get("Accept-Language")) == "" {
		return "missing Accept-Language"
	}

	// Browsers may omit Fetch Metadata in insecure contexts.
	if isSecure(r) {
		return missingSecFetch(r)
	}

	return ""
}

// missingSecFetch names the absent Fetch Metadata headers, or returns "".
func missingSecFetch(r *http.Request) string {
	var missing []string

	for _, name := range requiredSecFetchHeaders {
		if r.Header.Get(name) == "" {
			missing = append(missing, name)
		}
	}

	switch len(missing) {
	case 0:
		return ""
	case 1:
		return "missing " + missing[0]
	default:
		slices.Sort(missing)

		return "missing " + strings.Join(missing, ", ")
	}
}

// isSecure reports whether the client reached us over HTTPS, directly or
// through a proxy that says so.
func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
