// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"net/http"

	"github.com/a-h/templ"
)

// ErrorData describes a failed request.
type ErrorData struct {
	StatusCode int
	Message    string

	// RequestID lets visitors quote the failure when reporting it.
	RequestID string
}

func (e ErrorData) title() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return "Page not found"
	case http.StatusTooManyRequests:
		return "Slow down"
	default:
		return "Oops! Something went wrong"
	}
}

func (e ErrorData) message() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode == http.StatusNotFound:
		return "The page you were looking for does not exist."
	case e.StatusCode == http.StatusTooManyRequests:
		return "You have made too many requests. Please wait a moment and try again."
	default:
		return "We're sorry for the inconvenience. Please try refreshing the page."
	}
}

func (e ErrorData) notFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NotFound renders the not-found page.
func NotFound(data PageData) templ.Component {
	return Error(data, ErrorData{StatusCode: http.StatusNotFound})
}
