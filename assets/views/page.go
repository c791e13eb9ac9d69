// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views renders the site's pages from the components in package ui.

Pages are templ templates; the *_templ.go files are generated from them.
*/
package views

import (
	"path"
	"slices"
	"strings"

	"codeberg.org/portfolio/site/assets/components/ui"
	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/design/class"
	"codeberg.org/portfolio/site/design/motion"
	"codeberg.org/portfolio/site/design/tokens"
	"codeberg.org/portfolio/site/design/variant"
)

// RequiredPresets lists every motion preset the pages and their components use.
func RequiredPresets() []motion.Name {
	return slices.Concat(ui.RequiredPresets, []motion.Name{
		motion.PageEntry,
		motion.FadeUp,
		motion.ScaleIn,
		motion.FadeInView,
		motion.IntroEntry,
		motion.ProjectReveal,
		motion.CardHover,
	})
}

// Site holds the site-wide settings pages are rendered with.
type Site struct {
	Title      string
	Author     string
	Language   string
	BaseURL    string
	ResumePath string
	ThemeColor string
}

// Meta describes a page for search engines and link previews.
type Meta struct {
	Title       string
	Description string
	Path        string
	Image       string
	Type        string
	Keywords    []string
	NoIndex     bool
}

// PageData is passed to every page.
type PageData struct {
	Site    Site
	Profile content.Profile

	// Path is the request path, used to highlight the active navigation link.
	Path string
	Year int
}

func (s Site) language() string {
	if s.Language == "" {
		return "en"
	}

	return s.Language
}

// absolute resolves a site-relative path against the base URL.
func (s Site) absolute(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(p, "/")
}

// fullTitle appends the author to a page title that does not already name them.
func (s Site) fullTitle(title string) string {
	switch {
	case title == "":
		return s.Title
	case s.Author == "" || strings.Contains(title, s.Author):
		return title
	default:
		return title + " | " + s.Author
	}
}

// owner is the name shown in the footer.
func (d PageData) owner() string {
	if d.Profile.Name != "" {
		return d.Profile.Name
	}

	return d.Site.Author
}

// refreshPath is where the refresh button of an error page points.
func (d PageData) refreshPath() string {
	if d.Path == "" {
		return "/"
	}

	return d.Path
}

type navItem struct {
	label string
	props ui.NavLinkProps
}

func navItems(data PageData) []navItem {
	items := []navItem{
		{label: "About", props: ui.NavLinkProps{Href: "/", Active: isActive(data.Path, "/")}},
		{label: "Work", props: ui.NavLinkProps{Href: "/work", Active: isActive(data.Path, "/work")}},
	}

	if data.Site.ResumePath != "" {
		items = append(items, navItem{label: "Resume", props: ui.NavLinkProps{
			Href:     data.Site.ResumePath,
			Download: path.Base(data.Site.ResumePath),
		}})
	}

	return items
}

// isActive reports whether the navigation entry for href matches the current path.
func isActive(current, href string) bool {
	if href == "/" {
		return current == "/"
	}

	return current == href || strings.HasPrefix(current, href+"/")
}

func aboutMeta(p content.Profile) Meta {
	return Meta{
		Title:       p.Name + " - " + p.Role,
		Description: p.Bio,
		Path:        "/",
		Image:       p.Portrait,
		Keywords:    p.Keywords,
	}
}

func workMeta(data PageData, projects []content.Project) Meta {
	meta := Meta{
		Title:       "My Work - Portfolio Projects",
		Description: "A selection of projects by " + data.Profile.Name + ".",
		Path:        "/work",
		Keywords:    data.Profile.Keywords,
	}

	if len(projects) > 0 {
		meta.Image = projects[0].ImageURL
	}

	return meta
}

func projectMeta(data PageData, p content.Project) Meta {
	return Meta{
		Title:       p.Title,
		Description: p.Description,
		Path:        "/work/" + p.ID,
		Image:       p.ImageURL,
		Type:        "article",
		Keywords:    data.Profile.Keywords,
	}
}

func subtitleMotion() motion.Preset {
	return motion.Get(motion.FadeUp).With(motion.Override{Delay: motion.Seconds(motion.Delays.Medium)})
}

// projectMotion staggers the reveal of projects further down the list.
func projectMotion(index int) motion.Preset {
	return motion.Get(motion.ProjectReveal).
		With(motion.Override{Delay: motion.Seconds(float64(index) * motion.Delays.Stagger)})
}

// titleLink points a project title at its source code, or at the project's own
// page when linkTitle is set or there is no source.
func titleLink(p content.Project, linkTitle bool) ui.ButtonProps {
	href := p.SourceURL
	label := "View " + p.Title + " source code"

	if linkTitle || href == "" {
		href = "/work/" + p.ID
		label = "Read more about " + p.Title
	}

	return ui.ButtonProps{
		Variant:  variant.ButtonText,
		Size:     variant.ButtonSM,
		Href:     href,
		External: href == p.SourceURL,
		Label:    label,
		Class:    class.Compose(class.Of(tokens.Color.Text.Black), class.Of(tokens.Typography.Decoration.OnHover)),
	}
}

func greeting(s string) string {
	if s == "" {
		return "Hi"
	}

	return s
}

// tintToken maps a project tint to its background token.
func tintToken(t content.Tint) tokens.Token {
	switch t {
	case content.TintRed:
		return tokens.Color.Tint.Red
	case content.TintGold:
		return tokens.Color.Tint.Gold
	case content.TintGreen:
		return tokens.Color.Tint.Green
	case content.TintBronze:
		return tokens.Color.Tint.Bronze
	case content.TintNeutral:
		return tokens.Color.Tint.Neutral
	default:
		return tokens.Color.Bg.Muted
	}
}

// firstName returns the first word of a name.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}

	return fields[0]
}
