// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/server/assets"
)

const cacheID = "test-cache-id"

var testRouter *Router

func TestMain(m *testing.M) {
	config.Global.SetDefaults()
	config.Global.Instance.FileServerCacheID = cacheID

	if err := content.Load(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	assets.FS = fstest.MapFS{
		"css/site.css":    {Data: []byte("body{margin:0}")},
		"js/motion.js":    {Data: []byte("'use strict';")},
		"img/hero.svg":    {Data: []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>")},
		"doc/resume.pdf":  {Data: []byte("%PDF-1.4")},
		"robots.txt":      {Data: []byte("User-agent: *\nAllow: /\n")},
		"fonts/README.md": {Data: []byte("fonts")},
	}

	testRouter = NewRouter()
	testRouter.DefineRoutes()

	if err := testRouter.RegisterMiddleware(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func serve(r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	testRouter.ServeHTTP(rr, r)

	return rr
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target      string
		status      int
		contentType string
		location    string
		title       string
	}{
		{target: "/", status: http.StatusOK, contentType: "text/html"},
		{target: "/work", status: http.StatusOK, contentType: "text/html"},
		{target: "/work/trailhead", status: http.StatusOK, contentType: "text/html"},
		{target: "/work/unknown", status: http.StatusNotFound, title: "Page not found"},
		{target: "/nowhere", status: http.StatusNotFound, title: "Page not found"},
		{target: "/work/", status: http.StatusPermanentRedirect, location: "/work"},
		{target: "/about", status: http.StatusPermanentRedirect, location: "/"},
		{target: "/projects/anvil", status: http.StatusPermanentRedirect, location: "/work/anvil"},
		{target: "/resume", status: http.StatusPermanentRedirect, location: "/doc/resume.pdf"},
		{target: "/css/site.css", status: http.StatusOK, contentType: "text/css"},
		{target: "/js/motion.js", status: http.StatusOK, contentType: "text/javascript"},
		{target: "/img/hero.svg", status: http.StatusOK, contentType: "image/svg+xml"},
		{target: "/doc/resume.pdf", status: http.StatusOK, contentType: "application/pdf"},
		{target: "/robots.txt", status: http.StatusOK, contentType: "text/plain"},
		{target: "/img/missing.png", status: http.StatusNotFound, title: "Page not found"},
		{target: "/css/", status: http.StatusNotFound, title: "Page not found"},
		{target: "/healthz", status: http.StatusOK, contentType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			rr := serve(httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.location, rr.Header().Get("Location"))
			assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
			assert.Equal(t, config.BuildVersion, rr.Header().Get("Portfolio-Version"))

			if tt.contentType != "" {
				assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), tt.contentType),
					rr.Header().Get("Content-Type"))
			}

			if tt.title != "" {
				doc, err := goquery.NewDocumentFromReader(rr.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.title, doc.Find("main h1").Text())
			}
		})
	}
}

func TestRedirectsCarrySecurityHeaders(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/work/", "/work/trailhead/", "/about", "/projects"} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()

			rr := serve(httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusPermanentRedirect, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
			assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, config.BuildVersion, rr.Header().Get("Portfolio-Version"))
		})
	}
}

func TestStaticCaching(t *testing.T) {
	t.Parallel()

	rr := serve(httptest.NewRequest(http.MethodGet, "/css/site.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `"`+cacheID+`"`, rr.Header().Get("ETag"))
	assert.Equal(t, "public, max-age=604800", rr.Header().Get("Cache-Control"))

	r := httptest.NewRequest(http.MethodGet, "/css/site.css", nil)
	r.Header.Set("If-None-Match", `"`+cacheID+`"`)

	rr = serve(r)
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestPagesAreCompressed(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/work", nil)
	r.Header.Set("Accept-Encoding", "gzip")

	rr := serve(r)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestServerTiming(t *testing.T) {
	t.Parallel()

	rr := serve(httptest.NewRequest(http.MethodGet, "/work/anvil", nil))
	assert.Contains(t, rr.Header().Get(servertiming.HeaderKey), "page.work.anvil")

	rr = serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Contains(t, rr.Header().Get(servertiming.HeaderKey), "probe.healthz")
}

func TestPageCacheControl(t *testing.T) {
	t.Parallel()

	rr := serve(httptest.NewRequest(http.MethodGet, "/work", nil))
	assert.True(t, strings.HasPrefix(rr.Header().Get("Cache-Control"), "public, max-age="))

	rr = serve(httptest.NewRequest(http.MethodGet, "/work/unknown", nil))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}
