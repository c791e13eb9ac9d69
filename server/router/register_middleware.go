// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/server/middleware"
	"codeberg.org/portfolio/site/server/middleware/limiter"
)

// RegisterMiddleware installs the middleware chain. The first one registered
// is the outermost.
func (router *Router) RegisterMiddleware() error {
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.Recover)
	// Above NormalizeURL so its redirects carry the security headers.
	router.Use(middleware.SetResponseHeaders)
	router.Use(middleware.NormalizeURL)
	router.Use(middleware.SetRequestContext)

	if cfg := config.Global.Compression; cfg.Enabled {
		compress, err := middleware.Compress(cfg.Level, cfg.MinSize)
		if err != nil {
			return err
		}

		router.Use(compress)
	}

	if config.Global.Limiter.Enabled {
		limiter.Init()

		router.Use(limiter.Evaluate)

		log.Info().
			Float64("rate", config.Global.Limiter.Rate).
			Int("burst", config.Global.Limiter.Burst).
			Msg("Rate limiter enabled")
	}

	return nil
}
