// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package content holds the profile and project data rendered by the site.

The data is read from a YAML file at startup and validated once. A built-in
copy is embedded in the binary and used when no file is configured.
*/
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// Global is the content loaded at startup.
var Global Site

//go:embed data/site.yaml
var embedded []byte

var (
	// ErrProjectNotFound is returned by Project for an unknown id.
	ErrProjectNotFound = errors.New("project not found")

	errInvalidContent = errors.New("invalid site content")
)

// Tint is the soft background color a project section is drawn on.
type Tint string

// Project tints.
const (
	TintRed     Tint = "red"
	TintGold    Tint = "gold"
	TintGreen   Tint = "green"
	TintBronze  Tint = "bronze"
	TintNeutral Tint = "neutral"
)

// Link is an external profile link shown in the footer.
type Link struct {
	Name string `validate:"required"                         yaml:"name"`
	URL  string `validate:"required,url"                     yaml:"url"`
	Icon string `validate:"required,oneof=github linkedin mail" yaml:"icon"`
}

// Profile describes the site owner.
type Profile struct {
	Name       string   `validate:"required"           yaml:"name"`
	Role       string   `validate:"required"           yaml:"role"`
	Location   string   `yaml:"location"`
	Tagline    string   `validate:"required"           yaml:"tagline"`
	Greeting   string   `yaml:"greeting"`
	Bio        string   `validate:"required"           yaml:"bio"`
	Portrait   string   `validate:"required,asset_url" yaml:"portrait"`
	HeroImage  string   `validate:"required,asset_url" yaml:"heroImage"`
	Email      string   `validate:"omitempty,email"    yaml:"email"`
	KnowsAbout []string `yaml:"knowsAbout"`
	Keywords   []string `yaml:"keywords"`
	Links      []Link   `validate:"dive"               yaml:"links"`
}

// Project is one entry on the work page.
type Project struct {
	ID          string `validate:"required,slug"                                yaml:"id"`
	Title       string `validate:"required"                                     yaml:"title"`
	Description string `validate:"required"                                     yaml:"description"`
	ImageURL    string `validate:"required,asset_url"                           yaml:"imageUrl"`
	Tint        Tint   `validate:"omitempty,oneof=red gold green bronze neutral" yaml:"tint"`
	AppURL      string `validate:"required,http_url"                            yaml:"appUrl"`
	SourceURL   string `validate:"omitempty,http_url"                           yaml:"sourceUrl"`
}

// Site is the complete content of the site.
type Site struct {
	Profile  Profile   `validate:"required"                     yaml:"profile"`
	Projects []Project `validate:"required,min=1,unique=ID,dive" yaml:"projects"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// validatorInstance returns the shared validator with the content-specific tags registered.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})

		// Site-relative paths or absolute http(s) URLs.
		_ = v.RegisterValidation("asset_url", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()

			switch {
			case strings.HasPrefix(s, "//"):
				return false
			case strings.HasPrefix(s, "/"):
				return !strings.ContainsAny(s, " \t\n")
			default:
				return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
			}
		})

		validateInst = v
	})

	return validateInst
}

// Parse decodes and validates site content.
func Parse(data []byte) (Site, error) {
	var site Site

	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("failed to parse site content: %w", err)
	}

	if err := validatorInstance().Struct(site); err != nil {
		return Site{}, fmt.Errorf("%w: %w", errInvalidContent, describe(err))
	}

	return site, nil
}

// describe turns validator errors into one readable error per field.
func describe(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	errs := make([]error, 0, len(ves))
	for _, fe := range ves {
		errs = append(errs, fmt.Errorf("%s failed validation for tag '%s'", strings.ToLower(fe.Namespace()), fe.Tag()))
	}

	return errors.Join(errs...)
}

// Load reads content from path into Global, or the embedded copy when path is empty.
func Load(path string) error {
	data := embedded
	source := "embedded"

	if path != "" {
		raw, err := os.ReadFile(path) // #nosec G304 -- Only loading a content file
		if err != nil {
			return fmt.Errorf("failed to read content file %s: %w", path, err)
		}

		data = raw
		source = path
	}

	site, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	Global = site

	log.Info().
		Str("source", source).
		Int("projects", len(site.Projects)).
		Msg("Loaded site content")

	return nil
}

// Project returns the project with the given id.
func (s Site) Project(id string) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}

	return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}
