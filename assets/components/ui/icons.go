// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import "github.com/rs/zerolog/log"

// Icon shapes, drawn on a 24x24 stroke grid.
var iconPaths = map[string]string{
	"github": `<path d="M15 22v-4a4.8 4.8 0 0 0-1-3.5c3 0 6-2 6-5.5.08-1.25-.27-2.48-1-3.5.28-1.15.28-2.35 0-3.5 0 0-1 0-3 1.5-2.64-.5-5.36-.5-8 0C6 2 5 2 5 2c-.3 1.15-.3 2.35 0 3.5A5.403 5.403 0 0 0 4 9c0 3.5 3 5.5 6 5.5-.39.49-.68 1.05-.85 1.65-.17.6-.22 1.23-.15 1.85v4"/><path d="M9 18c-4.51 2-5-2-7-2"/>`,
	"linkedin": `<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-2-2 2 2 0 0 0-2 2v7h-4v-7a6 6 0 0 1 6-6z"/><rect width="4" height="12" x="2" y="9"/><circle cx="4" cy="4" r="2"/>`,
	"mail":     `<rect x="2" y="4" width="20" height="16" rx="2"/><path d="m22 7-10 5L2 7"/>`,
}

// iconPath returns the SVG body of a named icon. Unknown names are logged.
func iconPath(name string) (string, bool) {
	paths, ok := iconPaths[name]
	if !ok {
		log.Warn().
			Str("icon", name).
			Msg("Unknown icon")
	}

	return paths, ok
}
