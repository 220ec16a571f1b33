// Package logging builds the slog logger used by the uploader.
//
// The default "actions" format speaks the pipeline's workflow-command
// dialect so warnings and errors are annotated in the run UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w in the given format ("actions", "text"
// or "json") at the given level ("debug", "info", "warn" or "error").
func New(format, level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "actions", "":
		return slog.New(NewActionsHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}

// AddMask asks the runner to hide value in all further log output.
func AddMask(w io.Writer, value string) error {
	if value == "" {
		return nil
	}

	_, err := fmt.Fprintf(w, "::add-mask::%s\n", escapeData(value))

	return err
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}
