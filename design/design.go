// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package design is the entry point to the site's design system.

It re-exports the three operations every presentational component needs
(composing class lists, resolving component variants and fetching motion
presets) and runs the startup validation that keeps the token registry, the
variant tables and the motion catalog consistent with each other.

All operations are pure and safe for concurrent use.
*/
package design

import (
	"fmt"

	"codeberg.org/portfolio/site/design/class"
	"codeberg.org/portfolio/site/design/motion"
	"codeberg.org/portfolio/site/design/tokens"
	"codeberg.org/portfolio/site/design/variant"
)

// Compose joins the present fragments into one class attribute value.
func Compose(fragments ...class.Fragment) string {
	return class.Compose(fragments...)
}

// ResolveVariant returns the class list for a component kind, variant and size.
func ResolveVariant(kind variant.Kind, v, size, override string) string {
	return variant.Resolve(kind, v, size, override)
}

// GetPreset returns a copy of the named motion preset.
func GetPreset(name motion.Name) motion.Preset {
	return motion.Get(name)
}

// Validate checks the token registry, every variant table and the motion
// catalog. required lists the presets the rendered components depend on.
//
// A non-nil error means the design system has drifted and the server must not start.
func Validate(required ...motion.Name) error {
	if err := tokens.Validate(); err != nil {
		return fmt.Errorf("tokens: %w", err)
	}

	if err := variant.ValidateAll(); err != nil {
		return fmt.Errorf("variants: %w", err)
	}

	if err := motion.Validate(required...); err != nil {
		return fmt.Errorf("motion: %w", err)
	}

	return nil
}
