// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

const defaultConfigFile = "./config.yaml"

// parseCommandLineArgs returns the value of the -config flag and whether the
// user set it explicitly.
//
// The flag is registered once per process; later calls reuse it.
func parseCommandLineArgs() (string, bool) {
	f := flag.Lookup("config")
	if f == nil {
		flag.String("config", defaultConfigFile, "Path to a configuration file in YAML format.")
		f = flag.Lookup("config")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	set := false

	flag.Visit(func(visited *flag.Flag) {
		if visited.Name == "config" {
			set = true
		}
	})

	return f.Value.String(), set
}
