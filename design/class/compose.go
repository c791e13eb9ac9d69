// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package class merges ordered style fragments into a single class attribute value.

Fragments are explicitly present or absent. Composition keeps input order and
never de-duplicates: when two fragments set the same visual property, the one
that comes later in the rendered stylesheet wins, so callers control precedence
by ordering their fragments.
*/
package class

import (
	"strings"

	"codeberg.org/portfolio/site/design/tokens"
)

// Fragment is an optional piece of a class list.
//
// The zero value is absent.
type Fragment struct {
	value   string
	present bool
}

// None is the absent fragment.
var None = Fragment{}

// Of returns a present fragment holding s.
func Of[T ~string](s T) Fragment {
	return Fragment{value: string(s), present: true}
}

// If returns a fragment holding s when cond is true, and None otherwise.
func If[T ~string](cond bool, s T) Fragment {
	if !cond {
		return None
	}

	return Of(s)
}

// Either returns a fragment holding a when cond is true, and b otherwise.
func Either[T ~string](cond bool, a, b T) Fragment {
	if cond {
		return Of(a)
	}

	return Of(b)
}

// Tokens converts a token bucket into fragments, preserving order.
func Tokens(bucket ...tokens.Token) []Fragment {
	fragments := make([]Fragment, len(bucket))
	for i, tok := range bucket {
		fragments[i] = Of(tok)
	}

	return fragments
}

// Value returns the fragment text and whether the fragment is present.
func (f Fragment) Value() (string, bool) {
	return f.value, f.present
}

// IsPresent reports whether the fragment contributes to a composed class list.
//
// A present fragment holding only whitespace contributes nothing.
func (f Fragment) IsPresent() bool {
	return f.present && strings.TrimSpace(f.value) != ""
}

// Compose joins every present fragment with a single space, in input order.
// Surrounding whitespace is trimmed from each fragment, so the result never
// holds doubled or edge spaces.
func Compose(fragments ...Fragment) string {
	var sb strings.Builder

	for _, f := range fragments {
		if !f.IsPresent() {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(strings.TrimSpace(f.value))
	}

	return sb.String()
}

// Join composes plain strings, treating empty strings as absent.
func Join[T ~string](parts ...T) string {
	fragments := make([]Fragment, len(parts))
	for i, p := range parts {
		fragments[i] = Of(p)
	}

	return Compose(fragments...)
}
