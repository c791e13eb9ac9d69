// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	t.Parallel()

	compress, err := Compress(gzip.DefaultCompression, 1024)
	require.NoError(t, err)

	page := strings.Repeat("<p>Avery Quinn builds web services.</p>", 100)
	small := "ok"

	tests := []struct {
		name           string
		body           string
		acceptEncoding string
		gzipped        bool
	}{
		{"large response", page, "gzip, deflate, br", true},
		{"small response", small, "gzip", false},
		{"client without gzip", page, "identity", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = io.WriteString(w, tt.body)
			})

			r := httptest.NewRequest(http.MethodGet, "/work", nil)
			r.Header.Set("Accept-Encoding", tt.acceptEncoding)

			rr := httptest.NewRecorder()
			compress(rr, r, next)

			if !tt.gzipped {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, rr.Body.String())

				return
			}

			assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
			assert.Contains(t, rr.Header().Get("Vary"), "Accept-Encoding")

			zr, err := gzip.NewReader(rr.Body)
			require.NoError(t, err)

			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(got))
		})
	}
}

func TestCompressRejectsInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := Compress(42, 0)
	assert.Error(t, err)
}
