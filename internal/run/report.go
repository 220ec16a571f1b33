package run

import (
	"fmt"

	"release-uploader/internal/diagnostic"
)

// LineResult is the outcome of one mapping line.
type LineResult struct {
	Index   int    `yaml:"index"`
	Line    string `yaml:"line"`
	Source  string `yaml:"source,omitempty"`
	Dest    string `yaml:"dest,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Error   string `yaml:"error,omitempty"`
	Skipped bool   `yaml:"skipped,omitempty"`

	Err error `yaml:"-"`
}

// OK reports whether the line was uploaded.
func (r LineResult) OK() bool {
	return r.Err == nil && !r.Skipped
}

// Report summarizes a run.
type Report struct {
	ReleaseID   int64                  `yaml:"release_id"`
	ReleaseTag  string                 `yaml:"release_tag"`
	ReleaseURL  string                 `yaml:"release_url,omitempty"`
	Created     bool                   `yaml:"created"`
	Policy      string                 `yaml:"policy"`
	Results     []LineResult           `yaml:"results"`
	Diagnostics diagnostic.Diagnostics `yaml:"diagnostics"`
}

// URLs returns the download URLs of uploaded assets in line order.
func (r *Report) URLs() []string {
	var urls []string

	for _, res := range r.Results {
		if res.OK() {
			urls = append(urls, res.URL)
		}
	}

	return urls
}

// Uploaded counts successful lines.
func (r *Report) Uploaded() int {
	return len(r.URLs())
}

// Failed counts lines that returned an error.
func (r *Report) Failed() int {
	n := 0

	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}

	return n
}

// Skipped counts lines abandoned after a fatal error.
func (r *Report) Skipped() int {
	n := 0

	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}

	return n
}

// FatalError stops a fail-fast run. It wraps the failure of one line.
type FatalError struct {
	Index int
	Line  string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Index+1, e.Line, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
