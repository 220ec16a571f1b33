// Package output publishes run results: step outputs for the pipeline and
// a YAML report file.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"release-uploader/internal/run"
)

// Step output names.
const (
	KeyReleaseID  = "release_id"
	KeyReleaseURL = "release_url"
	KeyUploadURLs = "upload_urls"
	KeyFailed     = "failed"
)

// Outputs are the values exposed to later pipeline steps.
type Outputs struct {
	ReleaseID  int64
	ReleaseURL string
	UploadURLs []string
	Failed     int
}

// FromReport extracts outputs from a run report. A nil report yields zero
// outputs.
func FromReport(r *run.Report) Outputs {
	if r == nil {
		return Outputs{}
	}

	return Outputs{
		ReleaseID:  r.ReleaseID,
		ReleaseURL: r.ReleaseURL,
		UploadURLs: r.URLs(),
		Failed:     r.Failed(),
	}
}

// Write renders o in the step-output file format. Multi-line values use
// the heredoc form with a random delimiter.
func Write(w io.Writer, o Outputs) error {
	var b strings.Builder

	writeValue(&b, KeyReleaseID, strconv.FormatInt(o.ReleaseID, 10))
	writeValue(&b, KeyReleaseURL, o.ReleaseURL)
	writeValue(&b, KeyUploadURLs, strings.Join(o.UploadURLs, "\n"))
	writeValue(&b, KeyFailed, strconv.Itoa(o.Failed))

	_, err := io.WriteString(w, b.String())

	return err
}

func writeValue(b *strings.Builder, key, value string) {
	if !strings.ContainsAny(value, "\r\n") {
		fmt.Fprintf(b, "%s=%s\n", key, value)
		return
	}

	delim := "ghadelimiter_" + uuid.NewString()
	fmt.Fprintf(b, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
}

// AppendFile appends o to the step-output file at path.
func AppendFile(path string, o Outputs) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}

	if err := Write(f, o); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	return f.Close()
}

// WriteReport writes r as YAML to path.
func WriteReport(path string, r *run.Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}
