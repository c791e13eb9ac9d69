// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/portfolio/site/assets/views"
	"codeberg.org/portfolio/site/content"
)

// AboutPage is the handler for the home page.
func AboutPage(w http.ResponseWriter, r *http.Request) error {
	setPageHeaders(w)
	PreloadImage(w, content.Global.Profile.HeroImage)

	data := pageData(r)

	return renderPage(w, r, data, views.About(data))
}
