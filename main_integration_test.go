// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	retryCount  = 20
	dialTimeout = 250 * time.Millisecond
)

// client does not follow redirects so that they can be asserted.
var client = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// TestMain starts the server on a fixed port and waits for it before running tests.
func TestMain(m *testing.M) {
	for k, v := range map[string]string{
		"PORTFOLIO_HOST":          "127.0.0.1",
		"PORTFOLIO_PORT":          "8282",
		"PORTFOLIO_SITE_BASE_URL": authority,
		"PORTFOLIO_CONFIGFILE":    filepath.Join(os.TempDir(), "portfolio-integration-absent.yaml"),
	} {
		if err := os.Setenv(k, v); err != nil {
			log.Fatalf("setting %s: %v", k, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- run(ctx)
	}()

	if !waitForServerReady() {
		log.Fatalf("Server did not start in time")
	}

	code := m.Run()

	cancel()

	if err := <-done; err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	os.Exit(code)
}

func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true
		}

		time.Sleep(dialTimeout)
	}

	return false
}

func get(t *testing.T, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, authority+path, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/work", http.StatusOK},
		{"/work/trailhead", http.StatusOK},
		{"/work/ledgerline", http.StatusOK},
		{"/work/pagecraft", http.StatusOK},
		{"/work/anvil", http.StatusOK},
		{"/work/missing", http.StatusNotFound},
		{"/work/", http.StatusPermanentRedirect},
		{"/projects/anvil", http.StatusPermanentRedirect},
		{"/css/site.css", http.StatusOK},
		{"/js/motion.js", http.StatusOK},
		{"/img/portrait.svg", http.StatusOK},
		{"/doc/resume.pdf", http.StatusOK},
		{"/robots.txt", http.StatusOK},
		{"/healthz", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			resp := get(t, tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAboutPage(t *testing.T) {
	t.Parallel()

	resp := get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, authority+"/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Positive(t, doc.Find(`script[type="application/ld+json"]`).Length(), "structured data")
	assert.NotEmpty(t, doc.Find("[data-motion]").Nodes)

	for _, sel := range []string{`link[rel="stylesheet"]`, "script[src]"} {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			ref := s.AttrOr("href", s.AttrOr("src", ""))
			assert.Equal(t, http.StatusOK, get(t, ref).StatusCode, ref)
		})
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	resp := get(t, "/healthz")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "ok "), string(body))
}
