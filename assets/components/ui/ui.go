// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ui holds the presentational components shared by every page.

Components are templ templates. They take a props struct, resolve their class
list through the design system and attach motion presets as a data-motion
attribute. They hold no state and read nothing but their props and children.

The *_templ.go files are generated; run templ generate after editing a .templ file.
*/
package ui

import "codeberg.org/portfolio/site/design/motion"

// RequiredPresets lists the motion presets the components in this package use.
var RequiredPresets = []motion.Name{
	motion.ButtonTap,
	motion.NavLink,
	motion.HeadingEntry,
	motion.SectionReveal,
	motion.IconButton,
}
