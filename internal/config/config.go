// Package config assembles run configuration from defaults, an optional
// YAML file, pipeline inputs in the environment and command-line flags.
//
// Later sources win: defaults < file < environment < flags. Every source is
// decoded into an Overlay whose nil fields mean "not set".
package config

import (
	"time"

	"release-uploader/internal/github"
)

// Log formats.
const (
	FormatActions = "actions"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Config is the effective configuration of a run.
type Config struct {
	Token        string        `yaml:"token"`
	FileMap      []string      `yaml:"filemap"`
	ReleaseName  string        `yaml:"release_name"`
	ReleaseBody  string        `yaml:"release_body"`
	Prerelease   bool          `yaml:"prerelease"`
	Draft        bool          `yaml:"draft"`
	Tag          string        `yaml:"tag"`
	ReleaseID    int64         `yaml:"release_id"`
	SkipErrors   bool          `yaml:"skip_errors"`
	Overwrite    bool          `yaml:"overwrite"`
	Repository   string        `yaml:"repository"`
	APIURL       string        `yaml:"api_url"`
	Concurrency  int           `yaml:"concurrency"`
	Glob         bool          `yaml:"glob"`
	NormalizeTag bool          `yaml:"normalize_tag"`
	// Timeout bounds each API request. The run as a whole has no deadline.
	Timeout      time.Duration `yaml:"timeout"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
}

// Overlay is one configuration source. Nil fields are left untouched by
// Apply.
type Overlay struct {
	Token        *string        `yaml:"token"`
	FileMap      Lines          `yaml:"filemap"`
	ReleaseName  *string        `yaml:"release_name"`
	ReleaseBody  *string        `yaml:"release_body"`
	Prerelease   *bool          `yaml:"prerelease"`
	Draft        *bool          `yaml:"draft"`
	Tag          *string        `yaml:"tag"`
	ReleaseID    *int64         `yaml:"release_id"`
	SkipErrors   *bool          `yaml:"skip_errors"`
	Overwrite    *bool          `yaml:"overwrite"`
	Repository   *string        `yaml:"repository"`
	APIURL       *string        `yaml:"api_url"`
	Concurrency  *int           `yaml:"concurrency"`
	Glob         *bool          `yaml:"glob"`
	NormalizeTag *bool          `yaml:"normalize_tag"`
	Timeout      *time.Duration `yaml:"timeout"`
	LogLevel     *string        `yaml:"log_level"`
	LogFormat    *string        `yaml:"log_format"`
}

// Defaults returns the configuration used when no source sets a value.
func Defaults() Config {
	return Config{
		Draft:        true,
		Tag:          "latest",
		SkipErrors:   true,
		APIURL:       github.DefaultBaseURL,
		Concurrency:  1,
		NormalizeTag: true,
		Timeout:      10 * time.Minute,
		LogLevel:     "info",
		LogFormat:    FormatActions,
	}
}

// Apply returns base with every set field of over copied in. A set but
// empty string counts as unset, the way blank pipeline inputs do.
func Apply(base Config, over Overlay) Config {
	return apply(base, over, setString)
}

// Override is Apply for sources where an explicit empty string is a value,
// such as command-line flags.
func Override(base Config, over Overlay) Config {
	return apply(base, over, set[string])
}

func apply(base Config, over Overlay, str func(*string, *string)) Config {
	out := base

	str(&out.Token, over.Token)

	if over.FileMap != nil {
		out.FileMap = append([]string(nil), over.FileMap...)
	}

	str(&out.ReleaseName, over.ReleaseName)
	str(&out.ReleaseBody, over.ReleaseBody)
	set(&out.Prerelease, over.Prerelease)
	set(&out.Draft, over.Draft)
	str(&out.Tag, over.Tag)
	set(&out.ReleaseID, over.ReleaseID)
	set(&out.SkipErrors, over.SkipErrors)
	set(&out.Overwrite, over.Overwrite)
	str(&out.Repository, over.Repository)
	str(&out.APIURL, over.APIURL)
	set(&out.Concurrency, over.Concurrency)
	set(&out.Glob, over.Glob)
	set(&out.NormalizeTag, over.NormalizeTag)
	set(&out.Timeout, over.Timeout)
	str(&out.LogLevel, over.LogLevel)
	str(&out.LogFormat, over.LogFormat)

	return out
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Token != "" {
		c.Token = "***"
	}

	return c
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setString treats an empty string like an unset input.
func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
