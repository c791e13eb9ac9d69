// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Token
	}{
		{"color.text.primary", "text-gray-900"},
		{"color.bg.primary", "bg-primary-light"},
		{"spacing.mb.responsive.small", "mb-4 md:mb-6"},
		{"spacing.section.yLarge", "py-section-y-lg"},
		{"typography.weight.medium", "font-medium"},
		{"transition.colors", "transition-colors duration-200"},
		{"shadow.lg", "shadow-lg"},
		{"radius.full", "rounded-full"},
		{"layout.container.md", "max-w-4xl"},
		{"layout.flex.between", "flex items-center justify-between"},
		{"focus.ring", "focus-visible:ring-2 focus-visible:ring-offset-2 focus-visible:ring-gray-900"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := Lookup(tt.path)
			require.True(t, ok, "path should be registered")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupUndeclaredPath(t *testing.T) {
	t.Parallel()

	_, ok := Lookup("color.text.rainbow")
	assert.False(t, ok)

	_, ok = Lookup("color.text")
	assert.False(t, ok, "categories are not tokens")
}

func TestPathsCoverEveryCategory(t *testing.T) {
	t.Parallel()

	paths := Paths()
	require.NotEmpty(t, paths)
	assert.IsNonDecreasing(t, paths)

	for _, c := range categories() {
		found := false

		for _, p := range paths {
			if len(p) > len(c.name) && p[:len(c.name)+1] == c.name+"." {
				found = true

				break
			}
		}

		assert.True(t, found, "category %q has no registered tokens", c.name)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate())
}

// TestValidateDetectsDrift mutates a package variable, so it must not run in parallel.
func TestValidateDetectsDrift(t *testing.T) {
	original := Shadow.Xl

	t.Cleanup(func() { Shadow.Xl = original })

	Shadow.Xl = "shadow-2xl"

	err := Validate()
	require.ErrorIs(t, err, errTokenDrift)
	assert.Contains(t, err.Error(), "shadow.xl")
}

func TestCheckToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   Token
		wantErr error
	}{
		{"single class", "shadow-sm", nil},
		{"multiple classes", "px-4 py-2", nil},
		{"empty", "", errEmptyToken},
		{"blank", "   ", errEmptyToken},
		{"leading space", " mb-4", errMalformedToken},
		{"double space", "mb-4  md:mb-6", errMalformedToken},
		{"tab", "mb-4\tmd:mb-6", errMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, checkToken(tt.token), tt.wantErr)
		})
	}
}
