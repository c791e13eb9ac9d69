// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"slices"
	"strings"
)

type metaTag struct {
	key     string // name or property
	byProp  bool
	content string
}

// metaTags lists the SEO and social tags of a page. Empty tags are left out.
func metaTags(data PageData, meta Meta) []metaTag {
	title := data.Site.fullTitle(meta.Title)

	image := ""
	if meta.Image != "" {
		image = data.Site.absolute(meta.Image)
	}

	pageType := meta.Type
	if pageType == "" {
		pageType = "website"
	}

	tags := []metaTag{
		{key: "title", content: title},
		{key: "description", content: meta.Description},
		{key: "author", content: data.Site.Author},
		{key: "keywords", content: strings.Join(meta.Keywords, ", ")},
		{key: "og:type", byProp: true, content: pageType},
		{key: "og:url", byProp: true, content: data.Site.absolute(meta.Path)},
		{key: "og:title", byProp: true, content: title},
		{key: "og:description", byProp: true, content: meta.Description},
		{key: "og:image", byProp: true, content: image},
		{key: "og:site_name", byProp: true, content: data.Site.Title},
		{key: "twitter:card", content: "summary_large_image"},
		{key: "twitter:title", content: title},
		{key: "twitter:description", content: meta.Description},
		{key: "twitter:image", content: image},
		{key: "theme-color", content: data.Site.ThemeColor},
	}

	if meta.NoIndex {
		tags = append(tags, metaTag{key: "robots", content: "noindex, nofollow"})
	}

	return slices.DeleteFunc(tags, func(t metaTag) bool { return t.content == "" })
}

// structuredData returns the JSON-LD documents describing the site owner.
func structuredData(data PageData, person bool) []any {
	p := data.Profile
	site := data.Site

	sameAs := make([]string, 0, len(p.Links))
	for _, l := range p.Links {
		if strings.HasPrefix(l.URL, "http") {
			sameAs = append(sameAs, l.URL)
		}
	}

	personSchema := map[string]any{
		"@context":   "https://schema.org",
		"@type":      "Person",
		"name":       p.Name,
		"url":        site.absolute("/"),
		"image":      site.absolute(p.Portrait),
		"jobTitle":   p.Role,
		"sameAs":     sameAs,
		"knowsAbout": p.KnowsAbout,
	}

	if p.Email != "" {
		personSchema["email"] = "mailto:" + p.Email
	}

	if p.Location != "" {
		personSchema["homeLocation"] = map[string]any{"@type": "Place", "name": p.Location}
	}

	schemas := []any{
		personSchema,
		map[string]any{
			"@context":    "https://schema.org",
			"@type":       "WebSite",
			"name":        site.Title,
			"url":         site.absolute("/"),
			"description": p.Bio,
			"author":      map[string]any{"@type": "Person", "name": p.Name},
		},
	}

	if person {
		schemas = append(schemas, map[string]any{
			"@context":   "https://schema.org",
			"@type":      "ProfilePage",
			"mainEntity": personSchema,
		})
	}

	return schemas
}
