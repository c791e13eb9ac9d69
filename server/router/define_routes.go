// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/portfolio/site/config"
	"codeberg.org/portfolio/site/core/audit"
	"codeberg.org/portfolio/site/server/assets"
	"codeberg.org/portfolio/site/server/middleware"
	"codeberg.org/portfolio/site/server/routes"
)

// staticPatterns are served from assets.FS.
var staticPatterns = []string{
	"GET /robots.txt",
	"GET /css/",
	"GET /js/",
	"GET /img/",
	"GET /fonts/",
	"GET /doc/",
}

// DefineRoutes registers every route on the mux.
func (router *Router) DefineRoutes() {
	static := middleware.CatchErrorAs(audit.Static, fileServer(assets.FS))
	for _, pattern := range staticPatterns {
		router.Handle(pattern, static)
	}

	// /{$} matches only the root path.
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.AboutPage))
	router.HandleFunc("GET /work", middleware.CatchError(routes.WorkPage))
	router.HandleFunc("GET /work/{id}", middleware.CatchError(routes.ProjectPage))

	router.HandleFunc("GET /healthz", middleware.CatchErrorAs(audit.Probe, routes.Healthz))

	// Aliases for links shared elsewhere.
	router.HandleFunc("GET /about", redirectTo("/"))
	router.HandleFunc("GET /projects", redirectTo("/work"))
	router.HandleFunc("GET /projects/{id}", redirectWithPathValue("/work/", "id"))

	if resume := config.Global.Site.ResumePath; resume != "" {
		router.HandleFunc("GET /resume", redirectTo(resume))
	}

	// Everything else is a themed 404.
	router.HandleFunc("/", middleware.CatchError(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// fileServer serves files, but not directories, from fsys.
//
// go:embed content only changes with a new build, so the per-instance cache ID
// is a strong ETag for every file.
// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
func fileServer(fsys fs.FS) middleware.Handler {
	files := http.FileServerFS(filesOnly{fsys})

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("ETag", `"`+config.Global.Instance.FileServerCacheID+`"`)
		files.ServeHTTP(w, r)

		return nil
	}
}

// filesOnly hides directories so that the file server never lists them.
type filesOnly struct {
	fs.FS
}

func (f filesOnly) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()

		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return file, nil
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	if !flightRecorder.Enabled() {
		if err := flightRecorder.Start(); err != nil {
			log.Warn().Err(err).Msg("Flight recorder unavailable")
		}
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="flight.trace"`)

		if _, err := flightRecorder.WriteTo(w); err != nil {
			log.Warn().Err(err).Msg("Failed to write flight recording")
		}
	})
}
