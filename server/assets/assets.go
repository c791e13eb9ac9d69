// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets exposes the static file tree served under /css/, /js/, /img/,
/fonts/, /doc/ and /robots.txt.

The tree is embedded by package main, which assigns FS at init. Tests may
assign an fstest.MapFS.
*/
package assets

import "io/fs"

// FS is rooted at the asset directory, so "css/site.css" is a valid name.
var FS fs.FS
