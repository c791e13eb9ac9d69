// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package variant resolves a component's variant and size keys to a class list.

Each styled component declares a Table: a finite variant domain, an independent
finite size domain, a default for each, and the token buckets they map to.
Resolution composes base tokens, the variant bucket, the size bucket and the
caller's override class, in that order, so the override always comes last.
Unknown keys fall back to the declared defaults and never fail.
*/
package variant

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/design/class"
	"codeberg.org/portfolio/site/design/tokens"
)

// ErrUnresolvedVariant marks a variant or size key that is not in the component's domain.
//
// Resolution never returns it; it is attached to development diagnostics only.
var ErrUnresolvedVariant = errors.New("unresolved variant")

// table validation errors.
var (
	errDefaultNotDeclared = errors.New("default is not in the declared domain")
	errMissingBucket      = errors.New("declared key has no token bucket")
	errUndeclaredBucket   = errors.New("token bucket key is not in the declared domain")
	errEmptyDomain        = errors.New("domain is empty")
)

// Bucket is an ordered list of tokens applied together.
type Bucket []tokens.Token

// Table maps a component's variant and size keys to token buckets.
//
// Tables are declared once at package initialization and are read-only afterwards.
type Table[V ~string, S ~string] struct {
	Kind Kind

	// Base tokens apply to every variant and size.
	Base Bucket

	VariantDomain  []V
	DefaultVariant V
	Variants       map[V]Bucket

	SizeDomain  []S
	DefaultSize S
	Sizes       map[S]Bucket

	// VariantSizes replaces the size bucket for specific variants,
	// e.g. icon buttons use square sizes instead of padding.
	VariantSizes map[V]map[S]Bucket
}

// Resolve returns the composed class list for the given keys.
//
// An empty key selects the default silently. Any other key outside the declared
// domain also selects the default, with a debug-level diagnostic.
func (t *Table[V, S]) Resolve(v V, s S, override string) string {
	v = t.variantOrDefault(v)
	s = t.sizeOrDefault(s)

	fragments := make([]class.Fragment, 0, len(t.Base)+len(t.Variants[v])+len(t.sizeBucket(v, s))+1)
	fragments = append(fragments, class.Tokens(t.Base...)...)
	fragments = append(fragments, class.Tokens(t.Variants[v]...)...)
	fragments = append(fragments, class.Tokens(t.sizeBucket(v, s)...)...)
	fragments = append(fragments, class.Of(override))

	return class.Compose(fragments...)
}

// Defaults returns the declared default variant and size.
func (t *Table[V, S]) Defaults() (V, S) {
	return t.DefaultVariant, t.DefaultSize
}

// HasVariant reports whether v is in the declared variant domain.
func (t *Table[V, S]) HasVariant(v V) bool {
	return slices.Contains(t.VariantDomain, v)
}

// HasSize reports whether s is in the declared size domain.
func (t *Table[V, S]) HasSize(s S) bool {
	return slices.Contains(t.SizeDomain, s)
}

func (t *Table[V, S]) variantOrDefault(v V) V {
	if v == "" {
		return t.DefaultVariant
	}

	if _, ok := t.Variants[v]; !ok || !t.HasVariant(v) {
		log.Debug().
			Err(ErrUnresolvedVariant).
			Str("kind", string(t.Kind)).
			Str("variant", string(v)).
			Str("fallback", string(t.DefaultVariant)).
			Msg("Unknown variant, using default")

		return t.DefaultVariant
	}

	return v
}

func (t *Table[V, S]) sizeOrDefault(s S) S {
	if s == "" {
		return t.DefaultSize
	}

	if _, ok := t.Sizes[s]; !ok || !t.HasSize(s) {
		log.Debug().
			Err(ErrUnresolvedVariant).
			Str("kind", string(t.Kind)).
			Str("size", string(s)).
			Str("fallback", string(t.DefaultSize)).
			Msg("Unknown size, using default")

		return t.DefaultSize
	}

	return s
}

func (t *Table[V, S]) sizeBucket(v V, s S) Bucket {
	if perVariant, ok := t.VariantSizes[v]; ok {
		if bucket, ok := perVariant[s]; ok {
			return bucket
		}
	}

	return t.Sizes[s]
}

// Validate checks that the table agrees with its declared domains.
//
// Every declared variant and size must have a bucket, every bucket must belong
// to a declared key, and both defaults must be declared.
func (t *Table[V, S]) Validate() error {
	var errs []error

	if len(t.VariantDomain) == 0 {
		errs = append(errs, fmt.Errorf("%s variants: %w", t.Kind, errEmptyDomain))
	}

	if len(t.SizeDomain) == 0 {
		errs = append(errs, fmt.Errorf("%s sizes: %w", t.Kind, errEmptyDomain))
	}

	if !t.HasVariant(t.DefaultVariant) {
		errs = append(errs, fmt.Errorf("%s variant %q: %w", t.Kind, t.DefaultVariant, errDefaultNotDeclared))
	}

	if !t.HasSize(t.DefaultSize) {
		errs = append(errs, fmt.Errorf("%s size %q: %w", t.Kind, t.DefaultSize, errDefaultNotDeclared))
	}

	errs = append(errs, checkBuckets(t.Kind, "variant", t.VariantDomain, t.Variants)...)
	errs = append(errs, checkBuckets(t.Kind, "size", t.SizeDomain, t.Sizes)...)

	for v, sizes := range t.VariantSizes {
		if !t.HasVariant(v) {
			errs = append(errs, fmt.Errorf("%s variant %q sizes: %w", t.Kind, v, errUndeclaredBucket))
		}

		for s := range sizes {
			if !t.HasSize(s) {
				errs = append(errs, fmt.Errorf("%s variant %q size %q: %w", t.Kind, v, s, errUndeclaredBucket))
			}
		}
	}

	return errors.Join(errs...)
}

func checkBuckets[K ~string](kind Kind, label string, domain []K, buckets map[K]Bucket) []error {
	var errs []error

	for _, key := range domain {
		if _, ok := buckets[key]; !ok {
			errs = append(errs, fmt.Errorf("%s %s %q: %w", kind, label, key, errMissingBucket))
		}
	}

	for key := range buckets {
		if !slices.Contains(domain, key) {
			errs = append(errs, fmt.Errorf("%s %s %q: %w", kind, label, key, errUndeclaredBucket))
		}
	}

	return errs
}
