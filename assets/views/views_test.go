// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/design"
	"codeberg.org/portfolio/site/design/tokens"
)

var testSite = Site{
	Title:      "Test Portfolio",
	Author:     "Test Person",
	Language:   "en-GB",
	BaseURL:    "https://portfolio.example.com",
	ResumePath: "/doc/resume.pdf",
	ThemeColor: "#a0daff",
}

var testProjects = []content.Project{
	{
		ID:          "alpha",
		Title:       "Alpha",
		Description: "First <project>.",
		ImageURL:    "/img/alpha.png",
		Tint:        content.TintGreen,
		AppURL:      "https://alpha.example.com",
		SourceURL:   "https://git.example.com/alpha",
	},
	{
		ID:          "beta",
		Title:       "Beta",
		Description: "Second project.",
		ImageURL:    "https://cdn.example.com/beta.png",
		AppURL:      "https://beta.example.com",
	},
}

func pageData(path string) PageData {
	return PageData{
		Site: testSite,
		Profile: content.Profile{
			Name:      "Test Person",
			Role:      "engineer",
			Tagline:   "an engineer",
			Bio:       "Writes software.",
			Portrait:  "/img/portrait.svg",
			HeroImage: "/img/hero.svg",
			Email:     "test@example.com",
			Links: []content.Link{
				{Name: "GitHub", URL: "https://github.com/example", Icon: "github"},
				{Name: "Email", URL: "mailto:test@example.com", Icon: "mail"},
			},
		},
		Path: path,
		Year: 2025,
	}
}

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	return doc
}

func TestRequiredPresetsExist(t *testing.T) {
	t.Parallel()

	require.NoError(t, design.Validate(RequiredPresets()...))
}

func TestAbout(t *testing.T) {
	t.Parallel()

	doc := render(t, About(pageData("/")))

	assert.Equal(t, "en-GB", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Test Person - engineer", doc.Find("title").Text())
	assert.Equal(t, "https://portfolio.example.com/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Equal(t, "https://portfolio.example.com/img/portrait.svg", doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	assert.Equal(t, 0, doc.Find(`meta[name="robots"]`).Length())

	assert.Equal(t, "I'm Test.", doc.Find("h1").Text())
	assert.Equal(t, "text-hero font-cursive mb-4 md:mb-6", doc.Find("h1").AttrOr("class", ""))
	assert.Equal(t, "Writes software.", doc.Find("article p").Text())

	subtitle := doc.Find("h1").Parent().Next()
	assert.InDelta(t, 0.4, gjson.Get(subtitle.AttrOr("data-motion", ""), "timing.delay").Float(), 1e-9)

	active := doc.Find(`nav a[aria-current="page"]`)
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "About", active.Text())

	resume := doc.Find(`nav a[download]`)
	assert.Equal(t, "resume.pdf", resume.AttrOr("download", ""))
}

func TestStructuredData(t *testing.T) {
	t.Parallel()

	doc := render(t, About(pageData("/")))

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 3, scripts.Length())

	person := scripts.First().Text()
	require.True(t, gjson.Valid(person))
	assert.Equal(t, "Person", gjson.Get(person, "@type").String())
	assert.Equal(t, "Test Person", gjson.Get(person, "name").String())
	assert.Equal(t, "mailto:test@example.com", gjson.Get(person, "email").String())
	assert.Equal(t, []string{"https://github.com/example"}, stringsOf(gjson.Get(person, "sameAs")))

	assert.Equal(t, "ProfilePage", gjson.Get(scripts.Last().Text(), "@type").String())

	work := render(t, Work(pageData("/work"), testProjects))
	assert.Equal(t, 2, work.Find(`script[type="application/ld+json"]`).Length())
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}

	return out
}

func TestWork(t *testing.T) {
	t.Parallel()

	doc := render(t, Work(pageData("/work"), testProjects))

	assert.Equal(t, "My Work - Portfolio Projects | Test Person", doc.Find("title").Text())
	assert.Equal(t, "Work", doc.Find(`nav a[aria-current="page"]`).Text())

	articles := doc.Find("article")
	require.Equal(t, 2, articles.Length())

	first := articles.Eq(0)
	assert.Equal(t, "Project: Alpha", first.AttrOr("aria-label", ""))
	assert.Contains(t, first.AttrOr("class", ""), string(tokens.Color.Tint.Green))
	assert.Equal(t, "First <project>.", first.Find("p").First().Text())
	assert.Equal(t, "/work/alpha", first.Find("h2").Parent().AttrOr("href", ""))

	second := articles.Eq(1)
	assert.Contains(t, second.AttrOr("class", ""), string(tokens.Color.Bg.Muted))

	firstDelay := gjson.Get(first.AttrOr("data-motion", ""), "timing.delay")
	secondDelay := gjson.Get(second.AttrOr("data-motion", ""), "timing.delay")
	assert.False(t, firstDelay.Exists(), "the first project is not delayed")
	assert.InDelta(t, 0.1, secondDelay.Float(), 1e-9)
	assert.InDelta(t, -100.0, gjson.Get(second.AttrOr("data-motion", ""), "viewportReveal.margin").Float(), 0)
}

func TestProject(t *testing.T) {
	t.Parallel()

	doc := render(t, Project(pageData("/work/alpha"), testProjects[0]))

	assert.Equal(t, "Alpha | Test Person", doc.Find("title").Text())
	assert.Equal(t, "article", doc.Find(`meta[property="og:type"]`).AttrOr("content", ""))
	assert.Equal(t, "https://portfolio.example.com/work/alpha", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))

	titleLink := doc.Find("article h2").Parent()
	assert.Equal(t, "https://git.example.com/alpha", titleLink.AttrOr("href", ""))
	assert.Equal(t, "_blank", titleLink.AttrOr("target", ""))

	demo := doc.Find(`a[aria-label="View live demo of Alpha"]`)
	assert.Equal(t, "https://alpha.example.com", demo.AttrOr("href", ""))
	assert.Equal(t, "/img/alpha.png", demo.Find("img").AttrOr("src", ""))

	assert.Equal(t, "Work", doc.Find(`nav a[aria-current="page"]`).Text())
}

func TestErrorPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   ErrorData
		title  string
		action string
	}{
		{
			name:   "not found",
			data:   ErrorData{StatusCode: http.StatusNotFound},
			title:  "Page not found",
			action: "/",
		},
		{
			name:   "server error",
			data:   ErrorData{StatusCode: http.StatusInternalServerError, RequestID: "abc123"},
			title:  "Oops! Something went wrong",
			action: "/broken",
		},
		{
			name:   "rate limited",
			data:   ErrorData{StatusCode: http.StatusTooManyRequests},
			title:  "Slow down",
			action: "/broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := render(t, Error(pageData("/broken"), tt.data))

			section := doc.Find(`section[aria-label="Error"]`)
			assert.Equal(t, tt.title, section.Find("h1").Text())
			assert.Equal(t, tt.action, section.Find("a").AttrOr("href", ""))
			assert.Equal(t, "noindex, nofollow", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))

			if tt.data.RequestID != "" {
				assert.Contains(t, section.Text(), "Request ID: "+tt.data.RequestID)
			}
		})
	}
}

func TestFooter(t *testing.T) {
	t.Parallel()

	doc := render(t, NotFound(pageData("/missing")))

	footer := doc.Find(`footer[role="contentinfo"]`)
	assert.Equal(t, 2, footer.Find("a svg").Length())
	assert.Contains(t, footer.Find("p").Text(), "© 2025 Test Person. All rights reserved.")
}

func TestFullTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"", "Test Portfolio"},
		{"Work", "Work | Test Person"},
		{"Test Person - engineer", "Test Person - engineer"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, testSite.fullTitle(tt.title), tt.title)
	}
}

func TestStructuredDataCannotCloseScript(t *testing.T) {
	t.Parallel()

	data := pageData("/")
	data.Profile.Name = "</script><script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, About(data).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>alert(1)")

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	person := doc.Find(`script[type="application/ld+json"]`).First().Text()
	require.True(t, gjson.Valid(person))
	assert.Equal(t, data.Profile.Name, gjson.Get(person, "name").String())
}
