// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tokens

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// registry validation errors.
var (
	errEmptyToken     = errors.New("token is empty")
	errMalformedToken = errors.New("token has stray whitespace")
	errTokenDrift     = errors.New("token changed after registry was built")
	errDuplicatePath  = errors.New("token path declared twice")
)

// category binds a top-level registry name to its typed token table.
type category struct {
	name  string
	table any
}

// categories lists every top-level namespace, in registry order.
func categories() []category {
	return []category{
		{"color", &Color},
		{"spacing", &Spacing},
		{"typography", &Typography},
		{"transition", &Transition},
		{"shadow", &Shadow},
		{"radius", &Radius},
		{"layout", &Layout},
		{"focus", &Focus},
		{"state", &State},
	}
}

// registry maps dotted paths such as "color.text.primary" to tokens.
//
// It is built once at package initialization and never written again.
var registry, registryErr = buildRegistry()

// buildRegistry walks the typed token tables and records one entry per Token field.
func buildRegistry() (map[string]Token, error) {
	reg := make(map[string]Token)

	var errs []error

	for _, c := range categories() {
		walk(c.name, reflect.ValueOf(c.table).Elem(), func(path string, tok Token) {
			if _, exists := reg[path]; exists {
				errs = append(errs, fmt.Errorf("%w: %s", errDuplicatePath, path))

				return
			}

			reg[path] = tok
		})
	}

	return reg, errors.Join(errs...)
}

var tokenType = reflect.TypeFor[Token]()

// walk visits every Token field below value, calling fn with its dotted path.
func walk(prefix string, value reflect.Value, fn func(path string, tok Token)) {
	if value.Type() == tokenType {
		fn(prefix, Token(value.String()))

		return
	}

	if value.Kind() != reflect.Struct {
		return
	}

	for i := range value.NumField() {
		field := value.Type().Field(i)
		if !field.IsExported() {
			continue
		}

		walk(prefix+"."+lowerFirst(field.Name), value.Field(i), fn)
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[size:]
}

// Lookup returns the token registered at path.
//
// Lookups are meant for configuration and tooling; components use the typed
// variables directly.
func Lookup(path string) (Token, bool) {
	tok, ok := registry[path]

	return tok, ok
}

// Paths returns every registered path in sorted order.
func Paths() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Validate checks the registry at startup.
//
// It reports empty or malformed tokens, and tokens whose typed variable no
// longer matches the value captured when the registry was built.
func Validate() error {
	if registryErr != nil {
		return registryErr
	}

	var errs []error

	for _, path := range Paths() {
		if err := checkToken(registry[path]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	current, err := buildRegistry()
	if err != nil {
		return err
	}

	for path, tok := range current {
		if registered, ok := registry[path]; !ok || registered != tok {
			errs = append(errs, fmt.Errorf("%w: %s", errTokenDrift, path))
		}
	}

	return errors.Join(errs...)
}

// checkToken rejects tokens that would break single-space class composition.
func checkToken(tok Token) error {
	s := string(tok)

	if strings.TrimSpace(s) == "" {
		return errEmptyToken
	}

	if strings.TrimSpace(s) != s || strings.Contains(s, "  ") || strings.ContainsAny(s, "\t\n") {
		return errMalformedToken
	}

	return nil
}
