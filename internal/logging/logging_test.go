package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsHandlerLevels(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewActionsHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Debug("looking")
	log.Info("Successfully uploaded a.bin")
	log.Warn("Skipping error!", "line", 2)
	log.Error("Error occurred!", "err", "boom")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"::debug::looking",
		"Successfully uploaded a.bin",
		"::warning::Skipping error! line=2",
		"::error::Error occurred! err=boom",
	}, lines)
}

func TestActionsHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewActionsHandler(&buf, nil))
	log.Debug("hidden")
	log.Info("shown")

	assert.Equal(t, "shown\n", buf.String())
}

func TestActionsHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewActionsHandler(&buf, nil)).With("run_id", "r1").WithGroup("line")
	log.Info("msg", "dest", "my file.bin", slog.Group("src", "path", "a"))

	assert.Equal(t, "msg run_id=r1 line.dest=\"my file.bin\" line.src.path=a\n", buf.String())
}

func TestActionsHandlerEscapesCommands(t *testing.T) {
	var buf bytes.Buffer

	log := slog.New(NewActionsHandler(&buf, nil))
	log.Error("100% broken\nsecond line")

	assert.Equal(t, "::error::100%25 broken%0Asecond line\n", buf.String())
}

func TestAddMask(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, AddMask(&buf, "s3cr%t"))
	require.NoError(t, AddMask(&buf, ""))

	assert.Equal(t, "::add-mask::s3cr%25t\n", buf.String())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("json", "warn", &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])

	buf.Reset()

	log, err = New("text", "debug", &buf)
	require.NoError(t, err)
	log.Debug("hello")
	assert.Contains(t, buf.String(), "level=DEBUG msg=hello")

	_, err = New("xml", "info", &buf)
	require.Error(t, err)

	_, err = New("actions", "loud", &buf)
	require.Error(t, err)
}
