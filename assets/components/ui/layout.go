// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import "codeberg.org/portfolio/site/design/variant"

// SectionProps configures Section.
type SectionProps struct {
	Background variant.SectionBackground
	Padding    variant.SectionPadding
	Class      string
	AriaLabel  string

	// Animate reveals the section when it scrolls into view.
	Animate bool
}

// ContainerProps configures Container.
type ContainerProps struct {
	Width variant.ContainerWidth
	Class string
}
