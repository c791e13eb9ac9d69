// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"pgregory.net/rapid"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Names()...))

	err := Validate(FadeUp, Name("spin"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPreset)
	assert.Contains(t, err.Error(), "spin")
}

func TestGetIsStable(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		assert.Equal(t, Get(name), Get(name), name)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	t.Parallel()

	p := Get(FadeUp)
	p.Entry.From[Opacity] = 0.5
	p.Entry.To[Y] = 99
	p.Timing.Duration = 10

	fresh := Get(FadeUp)
	assert.InDelta(t, 0.0, fresh.Entry.From[Opacity], 0)
	assert.InDelta(t, 0.0, fresh.Entry.To[Y], 0)
	assert.InDelta(t, Durations.Slow, fresh.Timing.Duration, 0)
}

func TestGetUnknownPreset(t *testing.T) {
	t.Parallel()

	p := Get(Name("spin"))
	assert.Equal(t, Name("spin"), p.Name)
	assert.True(t, p.IsZero())
	assert.Empty(t, p.Attr())

	_, ok := Lookup(Name("spin"))
	assert.False(t, ok)
}

func TestFadeUp(t *testing.T) {
	t.Parallel()

	p := Get(FadeUp)
	assert.Equal(t, State{Opacity: 0, Y: -20}, p.Entry.From)
	assert.Equal(t, State{Opacity: 1, Y: 0}, p.Entry.To)
	assert.InDelta(t, 0.6, p.Timing.Duration, 1e-9)
	assert.InDelta(t, 0.2, p.Timing.Delay, 1e-9)
}

// Mutates the shared scales, so it does not run in parallel.
func TestSharedScalesAreCopied(t *testing.T) {
	saved := Durations

	t.Cleanup(func() { Durations = saved })

	before := Get(SectionReveal)
	Durations.Slow = 42

	assert.Equal(t, before, Get(SectionReveal))

	rebuilt := newCatalog(Durations, Delays, Scales)
	assert.InDelta(t, 42.0, rebuilt[SectionReveal].Timing.Duration, 0)
	assert.InDelta(t, 0.6, catalog[SectionReveal].Timing.Duration, 1e-9)
}

func TestWith(t *testing.T) {
	t.Parallel()

	base := Get(FadeInView)
	got := base.With(Override{
		Delay:      Seconds(0.4),
		Once:       Bool(false),
		RevealFrom: State{Y: 50},
		Hover:      State{Scale: 1.05},
	})

	assert.InDelta(t, 0.4, got.Timing.Delay, 1e-9)
	assert.InDelta(t, base.Timing.Duration, got.Timing.Duration, 0)
	assert.False(t, got.Reveal.Once)
	assert.Equal(t, State{Opacity: 0, Y: 50}, got.Reveal.From)
	assert.Equal(t, State{Scale: 1.05}, got.Hover)

	// The base preset is untouched.
	assert.True(t, base.Reveal.Once)
	assert.Equal(t, State{Opacity: 0, Y: 30}, base.Reveal.From)
	assert.Nil(t, base.Hover)
}

func TestAttr(t *testing.T) {
	t.Parallel()

	attr := Get(ProjectReveal).Attr()
	require.True(t, gjson.Valid(attr), attr)

	assert.Equal(t, "projectReveal", gjson.Get(attr, "name").String())
	assert.InDelta(t, 0.6, gjson.Get(attr, "timing.duration").Float(), 1e-9)
	assert.InDelta(t, 30.0, gjson.Get(attr, "viewportReveal.from.y").Float(), 0)
	assert.True(t, gjson.Get(attr, "viewportReveal.once").Bool())
	assert.InDelta(t, -100.0, gjson.Get(attr, "viewportReveal.margin").Float(), 0)
	assert.InDelta(t, 1.02, gjson.Get(attr, "hover.scale").Float(), 1e-9)
	assert.False(t, gjson.Get(attr, "entry").Exists())
	assert.False(t, gjson.Get(attr, "tap").Exists())

	tapOnly := Get(ButtonTap).Attr()
	assert.False(t, gjson.Get(tapOnly, "timing").Exists())
	assert.InDelta(t, 0.95, gjson.Get(tapOnly, "tap.scale").Float(), 1e-9)
}

func TestAttrRejectsNonFinite(t *testing.T) {
	t.Parallel()

	p := Get(FadeUp).With(Override{Duration: Seconds(math.Inf(1))})
	assert.False(t, p.finite())
	assert.Empty(t, p.Attr())
}

func TestProperty_OverrideWins(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(Names()).Draw(rt, "name")
		duration := rapid.Float64Range(0, 5).Draw(rt, "duration")
		y := rapid.Float64Range(-200, 200).Draw(rt, "y")

		base := Get(name)
		got := base.With(Override{Duration: Seconds(duration), EntryFrom: State{Y: y}})

		require.InDelta(rt, duration, got.Timing.Duration, 0)
		require.InDelta(rt, y, got.Entry.From[Y], 0)
		require.Equal(rt, base.Name, got.Name)
		require.Equal(rt, Get(name), base)

		for prop, v := range base.Entry.From {
			if prop != Y {
				require.InDelta(rt, v, got.Entry.From[prop], 0)
			}
		}
	})
}
