package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{FormatActions, FormatText, FormatJSON}
)

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error

	if c.Token == "" {
		errs = append(errs, errors.New("token is required"))
	}

	if len(c.FileMap) == 0 {
		errs = append(errs, errors.New("filemap is required"))
	}

	if c.ReleaseID == 0 && c.Tag == "" {
		errs = append(errs, errors.New("tag is required unless release_id is set"))
	}

	if c.ReleaseID < 0 {
		errs = append(errs, fmt.Errorf("release_id must not be negative, got %d", c.ReleaseID))
	}

	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL))
	}

	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of %v, got %q", logLevels, c.LogLevel))
	}

	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format must be one of %v, got %q", logFormats, c.LogFormat))
	}

	return errors.Join(errs...)
}
