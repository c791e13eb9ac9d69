// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"os/user"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errNegativeMaxConnections       = errors.New("Basic.MaxConnections cannot be negative")
	errIncompleteURL                = errors.New("URL must have both a scheme and a host")
	errInvalidResumePath            = errors.New("Site.ResumePath must be an absolute path on this site")
	errInvalidThemeColor            = errors.New("Site.ThemeColor must be a hex color such as #111827")
	errInvalidCompressionLevel      = errors.New("Compression.Level must be between -1 and 9")
	errNegativeCompressionMinSize   = errors.New("Compression.MinSize cannot be negative")
	errInvalidRenderCacheSize       = errors.New("RenderCache.Size must be positive when the render cache is enabled")
	errInvalidLogLevel              = errors.New("invalid Log.Level")
	errEmptyStateFilepath           = errors.New("filepath for StateFilepath cannot be empty when limiter is enabled")
	errInvalidIPv4Prefix            = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix            = errors.New("IPv6 prefix must be between 0 and 128")
	errInvalidLimiterRate           = errors.New("limiter rates and burst must be positive")
	errInvalidIPListEntry           = errors.New("invalid IP or CIDR in limiter list")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
	hexColorRegexp       = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if err := cfg.validateSite(); err != nil {
		return err
	}

	repoURL, err := ParseURL(cfg.Instance.RepoURL, "repo")
	if err != nil {
		return err
	}

	cfg.Instance.RepoURL = repoURL.String()

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if cfg.RenderCache.Enabled && cfg.RenderCache.Size <= 0 {
		return errInvalidRenderCacheSize
	}

	if cfg.Compression.Level < gzip.DefaultCompression || cfg.Compression.Level > gzip.BestCompression {
		return errInvalidCompressionLevel
	}

	if cfg.Compression.MinSize < 0 {
		return errNegativeCompressionMinSize
	}

	if !cfg.Limiter.Enabled {
		return nil
	}

	return cfg.validateLimiter()
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.MaxConnections < 0 {
		return errNegativeMaxConnections
	}

	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8080"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	mode, err := parseFileMode(cfg.Basic.RawUnixSocketPermissions)
	if err != nil {
		return err
	}

	cfg.Basic.UnixSocketPermissions = mode

	if name := cfg.Basic.UnixSocketUser; name != "" {
		lookup := user.Lookup
		if digitsRegexp.MatchString(name) {
			lookup = user.LookupId
		}

		if _, err := lookup(name); err != nil {
			return fmt.Errorf("%w: %s", errUnixSocketUserDoesNotExist, name)
		}
	}

	if name := cfg.Basic.UnixSocketGroup; name != "" {
		lookup := user.LookupGroup
		if digitsRegexp.MatchString(name) {
			lookup = user.LookupGroupId
		}

		if _, err := lookup(name); err != nil {
			return fmt.Errorf("%w: %s", errUnixSocketGroupDoesNotExist, name)
		}
	}

	return nil
}

// parseFileMode accepts octal ("660", "0660") or symbolic ("rw-rw----")
// permissions. Empty means 0666.
func parseFileMode(raw string) (os.FileMode, error) {
	switch {
	case raw == "":
		return 0o666, nil
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		return os.FileMode(mode), nil
	case fileModeStringRegexp.MatchString(raw):
		var mode os.FileMode

		const highestBit = 8

		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (highestBit - i)
			}
		}

		return mode, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnixSocketInvalidPermissions, raw)
	}
}

func (cfg *ServerConfig) validateSite() error {
	tag, err := language.Parse(cfg.Site.RawLanguage)
	if err != nil {
		return fmt.Errorf("invalid Site.Language %q: %w", cfg.Site.RawLanguage, err)
	}

	cfg.Site.Language = tag
	cfg.Site.RawLanguage = tag.String()

	baseURL, err := ParseURL(cfg.Site.RawBaseURL, "site base")
	if err != nil {
		return err
	}

	cfg.Site.BaseURL = *baseURL
	cfg.Site.RawBaseURL = baseURL.String()

	if cfg.Site.ResumePath != "" &&
		(!strings.HasPrefix(cfg.Site.ResumePath, "/") || strings.HasPrefix(cfg.Site.ResumePath, "//")) {
		return fmt.Errorf("%w: %q", errInvalidResumePath, cfg.Site.ResumePath)
	}

	if cfg.Site.ThemeColor != "" && !hexColorRegexp.MatchString(cfg.Site.ThemeColor) {
		return fmt.Errorf("%w: %q", errInvalidThemeColor, cfg.Site.ThemeColor)
	}

	return nil
}

func (cfg *ServerConfig) validateLimiter() error {
	if cfg.Limiter.StateFilepath == "" {
		return errEmptyStateFilepath
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 {
		return errInvalidIPv4Prefix
	}

	if cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		return errInvalidIPv6Prefix
	}

	if cfg.Limiter.Rate <= 0 || cfg.Limiter.SuspiciousRate <= 0 || cfg.Limiter.Burst <= 0 {
		return errInvalidLimiterRate
	}

	for _, entry := range slices.Concat(cfg.Limiter.PassIPs, cfg.Limiter.BlockIPs) {
		if _, err := netip.ParsePrefix(entry); err == nil {
			continue
		}

		if _, err := netip.ParseAddr(entry); err != nil {
			return fmt.Errorf("%w: %q", errInvalidIPListEntry, entry)
		}
	}

	return nil
}

// ParseURL parses an absolute URL, rejecting ones without a scheme or host.
// A trailing slash on the path is removed.
func ParseURL(raw, what string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s URL: %w", what, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%s URL %q: %w, e.g. https://example.com", what, raw, errIncompleteURL)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/")

	return parsed, nil
}
