// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package class

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"codeberg.org/portfolio/site/design/tokens"
)

func classGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z0-9:-]{0,10}`)
}

func fragmentGen() *rapid.Generator[Fragment] {
	return rapid.Custom(func(t *rapid.T) Fragment {
		if rapid.Bool().Draw(t, "present") {
			return Of(classGen().Draw(t, "class"))
		}

		return None
	})
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fragments []Fragment
		want      string
	}{
		{"no fragments", nil, ""},
		{"single", []Fragment{Of("mb-4")}, "mb-4"},
		{"keeps order", []Fragment{Of("b"), Of("a")}, "b a"},
		{"skips absent", []Fragment{Of("a"), None, If(false, "x"), Of("b")}, "a b"},
		{"skips empty", []Fragment{Of(""), Of("a"), Of("   ")}, "a"},
		{"keeps duplicates", []Fragment{Of("p-4"), Of("p-4")}, "p-4 p-4"},
		{"keeps conflicts", []Fragment{Of("bg-white"), Of("bg-gray-50")}, "bg-white bg-gray-50"},
		{"trims fragments", []Fragment{Of(" a "), Of("b")}, "a b"},
		{"trims trailing space", []Fragment{Of("a"), Of("b ")}, "a b"},
		{"whitespace is absent", []Fragment{Of("a"), Of("\t \n"), Of("b")}, "a b"},
		{"multi-class fragment", []Fragment{Of("px-4 py-2"), Of("text-sm")}, "px-4 py-2 text-sm"},
		{"either", []Fragment{Either(true, "on", "off"), Either(false, "on", "off")}, "on off"},
		{"tokens", Tokens(tokens.Radius.Lg, tokens.Shadow.Md), "rounded-lg shadow-md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Compose(tt.fragments...))
		})
	}
}

func TestFragmentValue(t *testing.T) {
	t.Parallel()

	v, ok := None.Value()
	assert.False(t, ok)
	assert.Empty(t, v)

	v, ok = Of(tokens.Shadow.Sm).Value()
	assert.True(t, ok)
	assert.Equal(t, "shadow-sm", v)

	assert.False(t, Of("").IsPresent())
	assert.False(t, If(false, "a").IsPresent())
	assert.True(t, If(true, "a").IsPresent())
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", Join("a", "", "b"))
	assert.Equal(t, "mb-4 shadow-sm", Join(tokens.Spacing.Mb.Small, "", tokens.Shadow.Sm))
	assert.Empty(t, Join[string]())
}

func TestProperty_ComposeIsIdempotent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		fragments := rapid.SliceOf(fragmentGen()).Draw(rt, "fragments")

		require.Equal(rt, Compose(fragments...), Compose(fragments...))
	})
}

func TestProperty_ComposePreservesOrder(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := classGen().Draw(rt, "a")
		b := classGen().Filter(func(s string) bool { return s != a }).Draw(rt, "b")

		require.NotEqual(rt, Compose(Of(a), Of(b)), Compose(Of(b), Of(a)))
	})
}

func TestProperty_ComposeFiltersAbsent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		fragments := rapid.SliceOf(fragmentGen()).Draw(rt, "fragments")

		var present []Fragment

		for _, f := range fragments {
			if f.IsPresent() {
				present = append(present, f)
			}
		}

		require.Equal(rt, Compose(present...), Compose(fragments...))
	})
}

func TestProperty_ComposeUsesSingleSpaces(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		fragments := rapid.SliceOf(fragmentGen()).Draw(rt, "fragments")

		got := Compose(fragments...)

		require.NotContains(rt, got, "  ")
		require.Equal(rt, strings.TrimSpace(got), got)
	})
}
