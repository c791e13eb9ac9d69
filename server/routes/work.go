// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"

	"codeberg.org/portfolio/site/assets/views"
	"codeberg.org/portfolio/site/content"
)

// WorkPage lists every project.
func WorkPage(w http.ResponseWriter, r *http.Request) error {
	setPageHeaders(w)

	data := pageData(r)

	return renderPage(w, r, data, views.Work(data, content.Global.Projects))
}

// ProjectPage shows the project named by the {id} path segment.
//
// Unknown projects answer 404, which CatchError turns into the not-found page.
func ProjectPage(w http.ResponseWriter, r *http.Request) error {
	project, err := content.Global.Project(r.PathValue("id"))
	if errors.Is(err, content.ErrProjectNotFound) {
		w.WriteHeader(http.StatusNotFound)

		return err
	}

	if err != nil {
		return err
	}

	setPageHeaders(w)
	PreloadImage(w, project.ImageURL)

	data := pageData(r)

	return renderPage(w, r, data, views.Project(data, project))
}
