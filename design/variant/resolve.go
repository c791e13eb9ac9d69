// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant

import (
	"errors"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/design/class"
)

// Kind names a styled component.
type Kind string

// Component kinds with a variant table.
const (
	KindButton    Kind = "button"
	KindHeading   Kind = "heading"
	KindSection   Kind = "section"
	KindContainer Kind = "container"
	KindNavLink   Kind = "navlink"
	KindImage     Kind = "image"
)

// resolver is the untyped view of a Table used for lookups by Kind.
type resolver interface {
	resolve(v, s, override string) string
	defaults() (string, string)
	Validate() error
}

func (t *Table[V, S]) resolve(v, s, override string) string {
	return t.Resolve(V(v), S(s), override)
}

func (t *Table[V, S]) defaults() (string, string) {
	v, s := t.Defaults()

	return string(v), string(s)
}

// tables holds every component table, keyed by kind.
var tables = map[Kind]resolver{
	KindButton:    Button,
	KindHeading:   Heading,
	KindSection:   Section,
	KindContainer: Container,
	KindNavLink:   NavLink,
	KindImage:     Image,
}

// Resolve returns the class list for a component kind.
//
// Empty or unknown variant and size values use the kind's defaults. An unknown
// kind yields only the override class.
func Resolve(kind Kind, variant, size, override string) string {
	t, ok := tables[kind]
	if !ok {
		log.Debug().
			Err(ErrUnresolvedVariant).
			Str("kind", string(kind)).
			Msg("Unknown component kind, using override only")

		return class.Compose(class.Of(override))
	}

	return t.resolve(variant, size, override)
}

// Defaults returns the default variant and size for kind.
//
// ok is false for an unknown kind.
func Defaults(kind Kind) (variant, size string, ok bool) {
	t, ok := tables[kind]
	if !ok {
		return "", "", false
	}

	variant, size = t.defaults()

	return variant, size, true
}

// Kinds returns every kind with a table, sorted.
func Kinds() []Kind {
	return slices.Sorted(maps.Keys(tables))
}

// ValidateAll validates every component table.
func ValidateAll() error {
	var errs []error

	for _, kind := range Kinds() {
		if err := tables[kind].Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
