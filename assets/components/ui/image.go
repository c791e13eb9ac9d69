// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	"regexp"

	"github.com/a-h/templ"

	"codeberg.org/portfolio/site/design/variant"
)

// ImageProps configures Image.
type ImageProps struct {
	Src   string
	Alt   string
	Class string
	Frame variant.ImageFrame

	// Eager loads the image immediately instead of when it nears the viewport.
	Eager bool

	// AspectRatio reserves space before the image loads, as a percentage
	// padding such as "56.25%". An invalid value is ignored.
	AspectRatio string

	Width  int
	Height int
}

var aspectRatioPattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{1,4})?%$`)

func (p ImageProps) hasAspectRatio() bool {
	return aspectRatioPattern.MatchString(p.AspectRatio)
}

// src sanitizes the image source. Unsafe schemes are replaced by an inert URL.
func (p ImageProps) src() string {
	return string(templ.URL(p.Src))
}

func (p ImageProps) loading() string {
	if p.Eager {
		return "eager"
	}

	return "lazy"
}
