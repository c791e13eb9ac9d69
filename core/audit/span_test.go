// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestServerTimingName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		span Span
		want string
	}{
		{Span{Kind: Page, URL: "/"}, "page.index"},
		{Span{Kind: Page, URL: "/work/trailhead"}, "page.work.trailhead"},
		{Span{Kind: Static, URL: "/css/site.css?v=2"}, "static.css.site.css"},
		{Span{Kind: Probe, URL: "/healthz/"}, "probe.healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.span.ServerTimingName())
		})
	}
}

func TestSpanLifecycle(t *testing.T) {
	t.Parallel()

	span := Span{Method: "GET", URL: "/"}
	_ = span.Begin(context.Background())

	assert.Equal(t, Page, span.Kind)

	span.End()
	first := span.Duration()
	span.End()

	assert.Equal(t, first, span.Duration())
}

// Replaces the global logger, so it does not run in parallel.
func TestSpanLog(t *testing.T) {
	var buf bytes.Buffer

	saved := log.Logger
	savedLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	Span{
		Kind:       Page,
		RequestID:  "abc",
		Method:     "GET",
		URL:        "/work/missing",
		StatusCode: 500,
		Size:       2048,
		Error:      errors.New("boom"),
	}.Log()

	line := buf.String()
	require.True(t, gjson.Valid(line), line)
	assert.Equal(t, "error", gjson.Get(line, "level").String())
	assert.Equal(t, "http", gjson.Get(line, "sys").String())
	assert.Equal(t, "/work/missing", gjson.Get(line, "url").String())
	assert.Equal(t, int64(500), gjson.Get(line, "status_code").Int())
	assert.Equal(t, "2.00K", gjson.Get(line, "len").String())
	assert.Equal(t, "boom", gjson.Get(line, "error").String())
}

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512", humanizeSize(512))
	assert.Equal(t, "1.50K", humanizeSize(1536))
	assert.Equal(t, "3.00M", humanizeSize(3*bytesInMB))
}
