// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package motion

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"
)

// ErrMissingPreset is returned by Validate when a required preset is not in the catalog.
var ErrMissingPreset = errors.New("missing animation preset")

// catalog validation errors.
var (
	errNameMismatch   = errors.New("preset name does not match its catalog key")
	errNegativeTiming = errors.New("preset timing is negative")
	errNonFinite      = errors.New("preset holds a non-finite value")
	errEmptyPreset    = errors.New("preset animates nothing")
)

// Preset names.
const (
	PageEntry        Name = "pageEntry"
	FadeUp           Name = "fadeUp"
	FadeInView       Name = "fadeInView"
	ScaleIn          Name = "scaleIn"
	StaggerContainer Name = "staggerContainer"
	StaggerItem      Name = "staggerItem"
	NavLink          Name = "navLink"
	CardHover        Name = "cardHover"
	IconButton       Name = "iconButton"
	ButtonTap        Name = "buttonTap"
	SectionReveal    Name = "sectionReveal"
	HeadingEntry     Name = "headingEntry"
	ProjectReveal    Name = "projectReveal"
	IntroEntry       Name = "introEntry"
)

// DurationScale holds the shared animation durations, in seconds.
type DurationScale struct {
	Fast   float64
	Normal float64
	Slow   float64
	Slower float64
}

// DelayScale holds the shared animation delays, in seconds.
type DelayScale struct {
	None    float64
	Short   float64
	Medium  float64
	Long    float64
	Stagger float64
}

// ScaleSteps holds the shared hover and tap scale factors.
type ScaleSteps struct {
	HoverSmall  float64
	HoverMedium float64
	HoverLarge  float64
	Tap         float64
}

// Shared timing values. Presets copy them when the catalog is built.
var (
	Durations = DurationScale{Fast: 0.2, Normal: 0.5, Slow: 0.6, Slower: 0.8}
	Delays    = DelayScale{None: 0, Short: 0.2, Medium: 0.4, Long: 0.6, Stagger: 0.1}
	Scales    = ScaleSteps{HoverSmall: 1.02, HoverMedium: 1.05, HoverLarge: 1.1, Tap: 0.95}
)

// catalog is built once, from the values the shared scales hold at initialization.
var catalog = newCatalog(Durations, Delays, Scales)

// newCatalog builds every preset from copies of the shared scales.
func newCatalog(d DurationScale, delay DelayScale, sc ScaleSteps) map[Name]Preset {
	hoverSmall := State{Scale: sc.HoverSmall}
	hoverMedium := State{Scale: sc.HoverMedium}
	hoverLarge := State{Scale: sc.HoverLarge}
	tap := State{Scale: sc.Tap}

	presets := []Preset{
		{
			Name:   PageEntry,
			Timing: Timing{Duration: d.Normal},
			Entry:  Entry{From: State{Opacity: 0}, To: State{Opacity: 1}},
		},
		{
			Name:   FadeUp,
			Timing: Timing{Duration: d.Slow, Delay: delay.Short},
			Entry:  Entry{From: State{Opacity: 0, Y: -20}, To: State{Opacity: 1, Y: 0}},
		},
		{
			Name:   FadeInView,
			Timing: Timing{Duration: d.Slow},
			Reveal: Reveal{From: State{Opacity: 0, Y: 30}, To: State{Opacity: 1, Y: 0}, Once: true},
		},
		{
			Name:   ScaleIn,
			Timing: Timing{Duration: d.Slow, Delay: delay.Medium},
			Entry:  Entry{From: State{Opacity: 0, Scale: 0.9}, To: State{Opacity: 1, Scale: 1}},
		},
		{
			Name:   StaggerContainer,
			Timing: Timing{StaggerChildren: delay.Stagger},
			Entry:  Entry{From: State{Opacity: 0}, To: State{Opacity: 1}},
		},
		{
			Name:  StaggerItem,
			Entry: Entry{From: State{Opacity: 0, Y: 20}, To: State{Opacity: 1, Y: 0}},
		},
		{
			Name:  NavLink,
			Hover: hoverMedium,
			Tap:   tap,
		},
		{
			Name:  CardHover,
			Hover: hoverSmall,
		},
		{
			Name:  IconButton,
			Hover: hoverLarge,
			Tap:   tap,
		},
		{
			Name: ButtonTap,
			Tap:  tap,
		},
		{
			Name:   SectionReveal,
			Timing: Timing{Duration: d.Slow},
			Reveal: Reveal{From: State{Opacity: 0, Y: 20}, To: State{Opacity: 1, Y: 0}, Once: true},
		},
		{
			Name:   HeadingEntry,
			Timing: Timing{Duration: d.Slow, Delay: delay.Short},
			Entry:  Entry{From: State{Opacity: 0, Y: -20}, To: State{Opacity: 1, Y: 0}},
		},
		{
			Name:   ProjectReveal,
			Timing: Timing{Duration: d.Slow},
			Hover:  hoverSmall,
			Reveal: Reveal{
				From:   State{Opacity: 0, Y: 30},
				To:     State{Opacity: 1, Y: 0},
				Once:   true,
				Margin: -100,
			},
		},
		{
			Name:   IntroEntry,
			Timing: Timing{Duration: d.Slow, Delay: delay.Medium},
			Entry:  Entry{From: State{Opacity: 0, Y: 20}, To: State{Opacity: 1, Y: 0}},
		},
	}

	c := make(map[Name]Preset, len(presets))
	for _, p := range presets {
		c[p.Name] = p.clone()
	}

	return c
}

// Lookup returns a copy of the named preset.
func Lookup(name Name) (Preset, bool) {
	p, ok := catalog[name]
	if !ok {
		return Preset{}, false
	}

	return p.clone(), true
}

// Get returns a copy of the named preset.
//
// Asking for an undeclared name is a programming error that Validate catches at
// startup; at render time it is logged and the empty preset, which animates
// nothing, is returned.
func Get(name Name) Preset {
	p, ok := Lookup(name)
	if !ok {
		log.Error().
			Err(ErrMissingPreset).
			Str("preset", string(name)).
			Msg("Unknown animation preset, rendering without motion")

		return Preset{Name: name}
	}

	return p
}

// Names returns every preset name, sorted.
func Names() []Name {
	return slices.Sorted(maps.Keys(catalog))
}

// Validate checks the catalog and that every required name is declared.
func Validate(required ...Name) error {
	var errs []error

	for _, name := range Names() {
		p := catalog[name]

		if p.Name != name {
			errs = append(errs, fmt.Errorf("%s: %w", name, errNameMismatch))
		}

		if !p.finite() {
			errs = append(errs, fmt.Errorf("%s: %w", name, errNonFinite))
		}

		if p.Timing.Duration < 0 || p.Timing.Delay < 0 || p.Timing.StaggerChildren < 0 {
			errs = append(errs, fmt.Errorf("%s: %w", name, errNegativeTiming))
		}

		if p.IsZero() {
			errs = append(errs, fmt.Errorf("%s: %w", name, errEmptyPreset))
		}
	}

	for _, name := range required {
		if _, ok := catalog[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingPreset, name))
		}
	}

	return errors.Join(errs...)
}
