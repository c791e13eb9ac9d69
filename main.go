// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Portfolio serves a personal portfolio site: an about page, a work page listing
projects, and a page per project.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"codeberg.org/portfolio/site/assets/views"
	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/content"
	"codeberg.org/portfolio/site/core/audit"
	"codeberg.org/portfolio/site/core/rendercache"
	"codeberg.org/portfolio/site/design"
	"codeberg.org/portfolio/site/server/assets"
	"codeberg.org/portfolio/site/server/middleware/limiter"
	"codeberg.org/portfolio/site/server/router"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout = 15 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 30 * time.Second

	serverShutdownDeadline = 5 * time.Second
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

//go:embed assets/css assets/fonts assets/img assets/js assets/doc assets/robots.txt
var embeddedContent embed.FS

//nolint:gochecknoinits // assets.FS must be set before any test or route uses it
func init() {
	sub, err := fs.Sub(embeddedContent, "assets")
	if err != nil {
		panic(fmt.Errorf("embedded assets: %w", err))
	}

	assets.FS = sub
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run starts the server and blocks until ctx is done or serving fails.
func run(ctx context.Context) error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := design.Validate(views.RequiredPresets()...); err != nil {
		return fmt.Errorf("design system is inconsistent: %w", err)
	}

	if err := content.Load(config.Global.Site.ContentFile); err != nil {
		return fmt.Errorf("failed to load site content: %w", err)
	}

	log.Info().
		Str("owner", content.Global.Profile.Name).
		Int("projects", len(content.Global.Projects)).
		Msg("Loaded site content")

	if err := rendercache.Setup(); err != nil {
		return fmt.Errorf("failed to set up render cache: %w", err)
	}

	r := router.NewRouter()
	r.DefineRoutes()

	if err := r.RegisterMiddleware(); err != nil {
		return fmt.Errorf("failed to set up middleware: %w", err)
	}

	listener, err := chooseListener(ctx)
	if err != nil {
		return err
	}

	if n := config.Global.Basic.MaxConnections; n > 0 {
		listener = netutil.LimitListener(listener, n)

		log.Info().Int("max_connections", n).Msg("Limiting simultaneous connections")
	}

	server := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	err = group.Wait()

	if config.Global.Limiter.Enabled {
		if finiErr := limiter.Fini(); finiErr != nil {
			log.Warn().Err(finiErr).Msg("Failed to save limiter state")
		}
	}

	if err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

func chooseListener(ctx context.Context) (net.Listener, error) {
	if config.Global.Basic.UnixSocket != "" {
		unixAddr := config.Global.Basic.UnixSocket

		unixListener, err := (&net.ListenConfig{}).Listen(ctx, "unix", unixAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", unixAddr, err)
		}

		if err = setupSocket(); err != nil {
			_ = unixListener.Close()

			return nil, err
		}

		log.Info().
			Str("address", unixAddr).
			Msg("Listening on Unix domain socket")

		return unixListener, nil
	}

	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	log.Info().
		Str("address", tcpListener.Addr().String()).
		Str("url", config.Global.Site.BaseURL.String()).
		Msg("Listening on address")

	return tcpListener, nil
}

func setupSocket() error {
	cfg := config.Global.Basic

	uid, gid := -1, -1

	var err error

	if cfg.UnixSocketUser != "" {
		uid, err = parseUserOrGroupID(cfg.UnixSocketUser, "user")
		if err != nil {
			return err
		}
	}

	if cfg.UnixSocketGroup != "" {
		gid, err = parseUserOrGroupID(cfg.UnixSocketGroup, "group")
		if err != nil {
			return err
		}
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(cfg.UnixSocket, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(cfg.UnixSocket, cfg.UnixSocketPermissions); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

// parseUserOrGroupID accepts a numeric ID or a name to look up.
func parseUserOrGroupID(value, kind string) (int, error) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	var idStr string

	switch kind {
	case "user":
		u, err := user.Lookup(value)
		if err != nil {
			return -1, fmt.Errorf("failed to look up user %q: %w", value, err)
		}

		idStr = u.Uid
	default:
		g, err := user.LookupGroup(value)
		if err != nil {
			return -1, fmt.Errorf("failed to look up group %q: %w", value, err)
		}

		idStr = g.Gid
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return -1, fmt.Errorf("failed to parse %s ID of %q: %w", kind, value, err)
	}

	return id, nil
}
