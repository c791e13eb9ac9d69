// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the server configuration from defaults, a YAML file,
// a .env file and the environment, in that order.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/portfolio/site/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// configFileEnv names the environment variable holding the config file path.
const configFileEnv = "PORTFOLIO_CONFIGFILE"

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"PORTFOLIO_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"PORTFOLIO_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"PORTFOLIO_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"PORTFOLIO_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"PORTFOLIO_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"PORTFOLIO_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
		// Simultaneous connections accepted by the listener; 0 is unlimited.
		MaxConnections int `env:"PORTFOLIO_MAX_CONNECTIONS,overwrite" yaml:"maxConnections"`
	} `yaml:"basic"`

	Site struct {
		Title       string       `env:"PORTFOLIO_SITE_TITLE,overwrite" yaml:"title"`
		Author      string       `env:"PORTFOLIO_SITE_AUTHOR,overwrite" yaml:"author"`
		RawLanguage string       `env:"PORTFOLIO_SITE_LANGUAGE,overwrite" yaml:"language"`
		Language    language.Tag `yaml:"-"`
		RawBaseURL  string       `env:"PORTFOLIO_SITE_BASE_URL,overwrite" yaml:"baseUrl"`
		BaseURL     url.URL      `yaml:"-"`
		ResumePath  string       `env:"PORTFOLIO_SITE_RESUME_PATH,overwrite" yaml:"resumePath"`
		ThemeColor  string       `env:"PORTFOLIO_SITE_THEME_COLOR,overwrite" yaml:"themeColor"`
		// Empty means the content compiled into the binary.
		ContentFile string `env:"PORTFOLIO_CONTENT_FILE,overwrite" yaml:"contentFile"`
	} `yaml:"site"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"PORTFOLIO_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"PORTFOLIO_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	// Rendered pages kept in memory, zstd-compressed.
	RenderCache struct {
		Enabled bool `env:"PORTFOLIO_RENDER_CACHE,overwrite" yaml:"enabled"`
		Size    int  `env:"PORTFOLIO_RENDER_CACHE_SIZE,overwrite" yaml:"size"`
	} `yaml:"renderCache"`

	Compression struct {
		Enabled bool `env:"PORTFOLIO_COMPRESSION,overwrite" yaml:"enabled"`
		// gzip level, 1 (fastest) to 9 (smallest).
		Level   int `env:"PORTFOLIO_COMPRESSION_LEVEL,overwrite" yaml:"level"`
		MinSize int `env:"PORTFOLIO_COMPRESSION_MIN_SIZE,overwrite" yaml:"minSize"`
	} `yaml:"compression"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"PORTFOLIO_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"PORTFOLIO_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"PORTFOLIO_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"PORTFOLIO_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"PORTFOLIO_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Limiter struct {
		Enabled       bool     `env:"PORTFOLIO_LIMITER,overwrite" yaml:"enabled"`
		StateFilepath string   `env:"PORTFOLIO_LIMITER_STATE_FILEPATH,overwrite" yaml:"stateFilepath"`
		PassIPs       []string `env:"PORTFOLIO_LIMITER_PASS_IPS,overwrite" yaml:"passList"`
		BlockIPs      []string `env:"PORTFOLIO_LIMITER_BLOCK_IPS,overwrite" yaml:"blockList"`
		FilterLocal   bool     `env:"PORTFOLIO_LIMITER_FILTER_LOCAL,overwrite" yaml:"filterLocal"`
		IPv4Prefix    int      `env:"PORTFOLIO_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix    int      `env:"PORTFOLIO_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
		// Requests failing the header heuristics fall into the suspicious bucket.
		CheckHeaders bool `env:"PORTFOLIO_LIMITER_CHECK_HEADERS,overwrite" yaml:"checkHeaders"`
		// Sustained requests per second per network.
		Rate           float64 `env:"PORTFOLIO_LIMITER_RATE,overwrite" yaml:"rate"`
		Burst          int     `env:"PORTFOLIO_LIMITER_BURST,overwrite" yaml:"burst"`
		SuspiciousRate float64 `env:"PORTFOLIO_LIMITER_SUSPICIOUS_RATE,overwrite" yaml:"suspiciousRate"`
	} `yaml:"limiter"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath()); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a container but not bound to a wildcard address ('0.0.0.0' or '::'), the site may be unreachable from outside")
	}

	return nil
}

// configFilePath picks the config file: the -config flag when given, then
// PORTFOLIO_CONFIGFILE, then ./config.yaml with ./config.yml as a fallback.
func configFilePath() string {
	flagValue, flagSet := parseCommandLineArgs()
	if flagSet {
		return flagValue
	}

	if envVar := os.Getenv(configFileEnv); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(flagValue); os.IsNotExist(err) {
		const ymlPath = "./config.yml"
		if _, statErr := os.Stat(ymlPath); statErr == nil {
			return ymlPath
		}
	}

	return flagValue
}

// staticPathPrefixes are served from the embedded asset tree.
var staticPathPrefixes = []string{"/css/", "/js/", "/img/", "/fonts/", "/doc/"}

// IsStaticPath reports whether path is served from the embedded asset tree.
func IsStaticPath(path string) bool {
	for _, prefix := range staticPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return path == "/robots.txt"
}

// ShouldSkipServerLogging determines if a request should bypass request logging.
//
// Static files and health probes are only logged in development.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	return IsStaticPath(path) || path == "/healthz"
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file, read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)
	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
