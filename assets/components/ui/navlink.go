// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import "codeberg.org/portfolio/site/design/variant"

// NavLinkProps configures NavLink.
type NavLinkProps struct {
	Href     string
	Active   bool
	Size     variant.NavLinkSize
	Class    string
	Download string
}
