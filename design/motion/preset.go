// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package motion is the catalog of named animation presets.

A preset is pure data: timing plus the entry, hover, tap and viewport-reveal
states a component animates between. Presets are rendered into a data-motion
attribute and applied in the browser by assets/js/motion.js.

The catalog is built once at package initialization. Shared durations and
delays are copied into each preset at that point, so later changes to
Durations or Delays never reach an existing preset.
*/
package motion

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/rs/zerolog/log"
)

// Name identifies a preset in the catalog.
type Name string

// Property is an animatable property.
type Property string

// Animatable properties understood by the browser runtime.
const (
	Opacity Property = "opacity"
	X       Property = "x"
	Y       Property = "y"
	Scale   Property = "scale"
	Rotate  Property = "rotate"
)

// State assigns values to animatable properties.
type State map[Property]float64

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	if s == nil {
		return nil
	}

	return maps.Clone(s)
}

// Merge returns a copy of s with every property of o applied on top.
func (s State) Merge(o State) State {
	if len(o) == 0 {
		return s.Clone()
	}

	merged := make(State, len(s)+len(o))
	maps.Copy(merged, s)
	maps.Copy(merged, o)

	return merged
}

// Timing holds durations and delays in seconds.
type Timing struct {
	Duration        float64 `json:"duration,omitempty"`
	Delay           float64 `json:"delay,omitempty"`
	StaggerChildren float64 `json:"staggerChildren,omitempty"`
}

// Entry animates an element from one state to another when it first appears.
type Entry struct {
	From State `json:"from,omitempty"`
	To   State `json:"to,omitempty"`
}

// IsZero reports whether the entry animates nothing.
func (e Entry) IsZero() bool {
	return len(e.From) == 0 && len(e.To) == 0
}

// Reveal animates an element when it scrolls into view.
type Reveal struct {
	From State `json:"from,omitempty"`
	To   State `json:"to,omitempty"`

	// Once stops the reveal from replaying when the element re-enters the viewport.
	Once bool `json:"once,omitempty"`

	// Margin shrinks or grows the viewport used for the intersection test, in pixels.
	Margin float64 `json:"margin,omitempty"`
}

// IsZero reports whether the reveal animates nothing.
func (r Reveal) IsZero() bool {
	return len(r.From) == 0 && len(r.To) == 0
}

// Preset is an immutable motion record.
type Preset struct {
	Name   Name   `json:"name"`
	Timing Timing `json:"timing,omitzero"`
	Entry  Entry  `json:"entry,omitzero"`
	Hover  State  `json:"hover,omitempty"`
	Tap    State  `json:"tap,omitempty"`
	Reveal Reveal `json:"viewportReveal,omitzero"`
}

// IsZero reports whether the preset animates nothing.
func (p Preset) IsZero() bool {
	return p.Entry.IsZero() && p.Reveal.IsZero() && len(p.Hover) == 0 && len(p.Tap) == 0
}

// clone deep-copies every state so callers cannot reach catalog memory.
func (p Preset) clone() Preset {
	p.Entry = Entry{From: p.Entry.From.Clone(), To: p.Entry.To.Clone()}
	p.Reveal.From = p.Reveal.From.Clone()
	p.Reveal.To = p.Reveal.To.Clone()
	p.Hover = p.Hover.Clone()
	p.Tap = p.Tap.Clone()

	return p
}

// Override holds per-instance changes to a preset. Nil fields keep the preset's value.
type Override struct {
	Duration        *float64
	Delay           *float64
	StaggerChildren *float64
	Once            *bool

	// States are merged property by property.
	EntryFrom  State
	EntryTo    State
	Hover      State
	Tap        State
	RevealFrom State
	RevealTo   State
}

// Seconds returns a pointer to v, for Override timing fields.
func Seconds(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v, for Override.Once.
func Bool(v bool) *bool {
	return &v
}

// With returns a copy of p with o applied. Override values always win.
func (p Preset) With(o Override) Preset {
	out := p.clone()

	if o.Duration != nil {
		out.Timing.Duration = *o.Duration
	}

	if o.Delay != nil {
		out.Timing.Delay = *o.Delay
	}

	if o.StaggerChildren != nil {
		out.Timing.StaggerChildren = *o.StaggerChildren
	}

	if o.Once != nil {
		out.Reveal.Once = *o.Once
	}

	out.Entry.From = out.Entry.From.Merge(o.EntryFrom)
	out.Entry.To = out.Entry.To.Merge(o.EntryTo)
	out.Hover = out.Hover.Merge(o.Hover)
	out.Tap = out.Tap.Merge(o.Tap)
	out.Reveal.From = out.Reveal.From.Merge(o.RevealFrom)
	out.Reveal.To = out.Reveal.To.Merge(o.RevealTo)

	return out
}

// Attr encodes p for a data-motion attribute.
//
// It returns an empty string for a preset that animates nothing, or when p
// holds values JSON cannot represent.
func (p Preset) Attr() string {
	if p.IsZero() {
		return ""
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Error().
			Err(err).
			Str("preset", string(p.Name)).
			Msg("Failed to encode motion preset")

		return ""
	}

	return string(data)
}

// finite reports whether every number in p is finite.
func (p Preset) finite() bool {
	for _, v := range []float64{p.Timing.Duration, p.Timing.Delay, p.Timing.StaggerChildren, p.Reveal.Margin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	for _, s := range []State{p.Entry.From, p.Entry.To, p.Hover, p.Tap, p.Reveal.From, p.Reveal.To} {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}
