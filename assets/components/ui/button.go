// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import "codeberg.org/portfolio/site/design/variant"

// ButtonProps configures Button.
type ButtonProps struct {
	Variant variant.ButtonVariant
	Size    variant.ButtonSize
	Class   string

	// Href renders the button as a link.
	Href     string
	Download string
	External bool

	// Type is the button type attribute. Defaults to "button".
	Type     string
	Disabled bool
	Label    string
}

func (p ButtonProps) buttonType() string {
	if p.Type == "" {
		return "button"
	}

	return p.Type
}
