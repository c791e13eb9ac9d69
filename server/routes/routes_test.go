// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/core/rendercache"
	"codeberg.org/portfolio/site/server/request_context"
)

// TestMain loads the embedded content once; the tests only read it.
func TestMain(m *testing.M) {
	config.Global.SetDefaults()
	config.Global.Site.Author = "Avery Quinn"

	if err := content.Load(""); err != nil {
		panic(err)
	}

	if err := rendercache.Setup(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func newRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)

	return r.WithContext(request_context.WithRequestContext(r.Context(), r))
}

func parse(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)

	return doc
}

func TestAboutPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	require.NoError(t, AboutPage(rr, newRequest("/")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Cache-Control"), "public, max-age=300")
	assert.Contains(t, rr.Header().Get("Link"), "<"+content.Global.Profile.HeroImage+">; rel=\"preload\"")

	doc := parse(t, rr)
	assert.Equal(t, 1, doc.Find("h1").Length())
	assert.Contains(t, doc.Find("title").Text(), "Avery Quinn")
}

func TestWorkPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	require.NoError(t, WorkPage(rr, newRequest("/work")))

	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parse(t, rr)
	assert.Equal(t, len(content.Global.Projects), doc.Find("main article").Length())
	assert.Equal(t, "page", doc.Find(`nav a[href="/work"]`).AttrOr("aria-current", ""))
}

func TestProjectPage(t *testing.T) {
	t.Parallel()

	first := content.Global.Projects[0]

	t.Run("known", func(t *testing.T) {
		t.Parallel()

		r := newRequest("/work/" + first.ID)
		r.SetPathValue("id", first.ID)

		rr := httptest.NewRecorder()
		require.NoError(t, ProjectPage(rr, r))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, parse(t, rr).Find("title").Text(), first.Title)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		r := newRequest("/work/missing")
		r.SetPathValue("id", "missing")

		rr := httptest.NewRecorder()
		err := ProjectPage(rr, r)

		require.ErrorIs(t, err, content.ErrProjectNotFound)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestPagesAreCached(t *testing.T) {
	t.Parallel()

	render := func() *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		require.NoError(t, WorkPage(rr, newRequest("/work?cached=1")))

		return rr
	}

	first, second := render(), render()

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
	assert.Contains(t, rendercache.Global.Keys(), "/work@"+strconv.Itoa(timeNow().Year()))
}

func TestBlockPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		title  string
	}{
		{http.StatusTooManyRequests, "Slow down"},
		{http.StatusForbidden, "Oops! Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			r := newRequest("/work")
			rr := httptest.NewRecorder()
			BlockPage(rr, r, tt.status)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, request_context.FromRequest(r).StatusCode)
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

			doc := parse(t, rr)
			assert.Equal(t, tt.title, doc.Find("main h1").Text())
			assert.Equal(t, "noindex, nofollow", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
			assert.Contains(t, doc.Text(), request_context.FromRequest(r).RequestID)
		})
	}
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	r := newRequest("/nowhere")
	request_context.FromRequest(r).StatusCode = http.StatusNotFound

	rr := httptest.NewRecorder()
	ErrorPage(rr, r)

	assert.Equal(t, "Page not found", parse(t, rr).Find("main h1").Text())
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	require.NoError(t, Healthz(rr, newRequest("/healthz")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "ok "+config.BuildVersion))
}
