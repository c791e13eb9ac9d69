// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"codeberg.org/portfolio/site/assets/views"
	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/core/rendercache"
	"codeberg.org/portfolio/site/server/request_context"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// siteSettings converts the site configuration into what views need.
func siteSettings() views.Site {
	s := config.Global.Site

	title := s.Title
	if title == "" {
		title = content.Global.Profile.Name
	}

	author := s.Author
	if author == "" {
		author = content.Global.Profile.Name
	}

	return views.Site{
		Title:      title,
		Author:     author,
		Language:   s.RawLanguage,
		BaseURL:    s.RawBaseURL,
		ResumePath: s.ResumePath,
		ThemeColor: s.ThemeColor,
	}
}

// pageData builds the data every page is rendered with.
func pageData(r *http.Request) views.PageData {
	path := request_context.FromRequest(r).Path
	if path == "" {
		path = r.URL.Path
	}

	return views.PageData{
		Site:    siteSettings(),
		Profile: content.Global.Profile,
		Path:    path,
		Year:    timeNow().Year(),
	}
}

// renderPage writes a page through the render cache.
//
// A page depends only on its path and the copyright year, so those form the key.
func renderPage(w http.ResponseWriter, r *http.Request, data views.PageData, page templ.Component) error {
	key := data.Path + "@" + strconv.Itoa(data.Year)

	return rendercache.Render(r.Context(), w, key, page)
}

// setPageHeaders marks a response as an HTML page that shared caches may keep.
func setPageHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(config.Global.HTTPCache.MaxAge.Seconds()),
		int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds())))
}

// PreloadImage adds a Link header asking the browser to fetch an image early.
func PreloadImage(w http.ResponseWriter, url string) {
	if url == "" {
		return
	}

	w.Header().Add("Link", fmt.Sprintf("<%s>; rel=\"preload\"; as=\"image\"; fetchpriority=\"high\"", url))
}
