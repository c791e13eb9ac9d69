// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import "codeberg.org/portfolio/site/design/variant"

// HeadingProps configures Heading.
type HeadingProps struct {
	Level   variant.HeadingLevel
	Variant variant.HeadingVariant
	Class   string
	Animate bool
}

// level returns the declared level, or h1 for anything else.
func (p HeadingProps) level() variant.HeadingLevel {
	if !variant.Heading.HasSize(p.Level) {
		return variant.Heading.DefaultSize
	}

	return p.Level
}
