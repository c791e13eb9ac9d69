// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/content"
)

// Healthz reports that the server is up and has content loaded.
func Healthz(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if len(content.Global.Projects) == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)

		_, err := fmt.Fprintln(w, "no content loaded")

		return err
	}

	_, err := fmt.Fprintf(w, "ok %s %s\n", config.BuildVersion, config.Global.Build.Revision())

	return err
}
