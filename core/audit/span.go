// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"strings"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind classifies a served request.
type Kind string

const (
	// Page is a rendered HTML page.
	Page Kind = "page"
	// Static is a file from the embedded asset tree.
	Static Kind = "static"
	// Probe is a health check.
	Probe Kind = "probe"
)

// Span represents one request while it is being served.
type Span struct {
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Kind       Kind
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Size       int
	Error      error
}

// ServerTimingName is the metric name reported in the Server-Timing header.
//
// Header tokens cannot hold '/', so the path separators are replaced.
func (span Span) ServerTimingName() string {
	path := strings.Trim(span.URL, "/")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	if path == "" {
		path = "index"
	}

	return string(span.Kind) + "." + strings.ReplaceAll(path, "/", ".")
}

// Begin starts timing the span and returns a context carrying its trace task.
func (span *Span) Begin(ctx context.Context) context.Context {
	if span.Kind == "" {
		span.Kind = Page
	}

	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+string(span.Kind))
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Desc = span.Method + " " + span.URL
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops the timer. Calling it more than once has no further effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration reports how long the span ran. It is zero until End is called.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log emits the span as an "http" log event.
//
// Server errors log at error level, everything else at debug.
func (span Span) Log() {
	var event *zerolog.Event
	if span.StatusCode >= 500 {
		event = log.Error()
	} else {
		event = log.Debug()
	}

	event.Str("sys", "http").
		Str("kind", string(span.Kind)).
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	default:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}
}
