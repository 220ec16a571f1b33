package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"release-uploader/internal/filemap"
)

// InputPrefix is how the pipeline exposes inputs as environment variables.
const InputPrefix = "INPUT_"

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (Overlay, error) {
	var ov Overlay

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&ov); err != nil && !errors.Is(err, io.EOF) {
		return Overlay{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return ov, nil
}

// FromEnv reads pipeline inputs from environ ("KEY=value" pairs). Inputs
// that are missing or blank are left unset.
func FromEnv(environ []string) (Overlay, error) {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, InputPrefix) {
			env[strings.TrimPrefix(k, InputPrefix)] = v
		}
	}

	var (
		ov   Overlay
		errs []error
	)

	str := func(name string) *string {
		v, ok := env[name]
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}

		return &v
	}

	boolean := func(name string) *bool {
		v := str(name)
		if v == nil {
			return nil
		}

		b, err := ParseBool(*v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", InputPrefix, name, err))
			return nil
		}

		return &b
	}

	ov.Token = str("TOKEN")
	ov.ReleaseName = str("RELEASE_NAME")
	ov.ReleaseBody = str("RELEASE_BODY")
	ov.Prerelease = boolean("PRERELEASE")
	ov.Draft = boolean("DRAFT")
	ov.Tag = str("TAG")
	ov.SkipErrors = boolean("SKIP_ERRORS")
	ov.Overwrite = boolean("OVERWRITE")
	ov.Repository = str("REPOSITORY")
	ov.APIURL = str("API_URL")
	ov.Glob = boolean("GLOB")
	ov.NormalizeTag = boolean("NORMALIZE_TAG")
	ov.LogLevel = str("LOG_LEVEL")
	ov.LogFormat = str("LOG_FORMAT")

	if v := str("FILEMAP"); v != nil {
		ov.FileMap = Lines(filemap.ParseLines(*v))
	}

	if v := str("RELEASE_ID"); v != nil {
		id, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRELEASE_ID: %w", InputPrefix, err))
		} else {
			ov.ReleaseID = &id
		}
	}

	if v := str("CONCURRENCY"); v != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sCONCURRENCY: %w", InputPrefix, err))
		} else {
			ov.Concurrency = &n
		}
	}

	if v := str("TIMEOUT"); v != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTIMEOUT: %w", InputPrefix, err))
		} else {
			ov.Timeout = &d
		}
	}

	return ov, errors.Join(errs...)
}

// ParseBool accepts the boolean spellings pipeline inputs allow:
// true, True, TRUE, false, False, FALSE.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q (use true or false)", s)
	}
}
