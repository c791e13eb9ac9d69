// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/portfolio/site/server/request_context"
)

func newRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)

	return r.WithContext(request_context.WithRequestContext(r.Context(), r))
}

func TestCatchError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		handler Handler
		status  int
		body    string
		title   string
		err     error
	}{
		{
			name: "success passes through",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				w.Header().Set("Cache-Control", "public, max-age=300")
				_, err := w.Write([]byte("hello"))

				return err
			},
			status: http.StatusOK,
			body:   "hello",
		},
		{
			name: "handled error status passes through",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusTeapot)

				return errBoom
			},
			status: http.StatusTeapot,
			err:    errBoom,
		},
		{
			name: "unhandled error renders 500",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				_, _ = w.Write([]byte("partial"))

				return errBoom
			},
			status: http.StatusInternalServerError,
			title:  "Oops! Something went wrong",
			err:    errBoom,
		},
		{
			name: "not found renders the error page",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				http.NotFound(w, nil)

				return nil
			},
			status: http.StatusNotFound,
			title:  "Page not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRequest("/work")
			rr := httptest.NewRecorder()
			CatchError(tt.handler).ServeHTTP(rr, r)

			ctx := request_context.FromRequest(r)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, ctx.StatusCode)
			assert.ErrorIs(t, ctx.RequestError, tt.err)

			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
				assert.Equal(t, "public, max-age=300", rr.Header().Get("Cache-Control"))
			}

			if tt.title != "" {
				doc, err := goquery.NewDocumentFromReader(rr.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.title, doc.Find("main h1").Text())
				assert.Contains(t, doc.Text(), ctx.RequestID)
				assert.NotContains(t, doc.Text(), "partial")
				assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestCatchErrorServerTiming(t *testing.T) {
	t.Parallel()

	h := Wrap(WithServerTiming, CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		_, err := w.Write([]byte("ok"))

		return err
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest("/work/trailhead"))

	timing := rr.Header().Get(servertiming.HeaderKey)
	assert.True(t, strings.HasPrefix(timing, "page.work.trailhead"), timing)
	assert.Contains(t, timing, "dur=")
}

func TestRecover(t *testing.T) {
	t.Parallel()

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}), Recover, SetRequestContext)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/work", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Body.String(), "Oops! Something went wrong")
}

func TestRecoverReraisesAbort(t *testing.T) {
	t.Parallel()

	h := Wrap(Recover, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string

	mark := func(name string) Middleware {
		return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
			order = append(order, name)
			next.ServeHTTP(w, r)
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"), mark("c"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c", "handler"}, order)
}
