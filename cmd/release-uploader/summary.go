package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"release-uploader/internal/run"
)

// writeSummary prints a boxed overview of the run to w.
func writeSummary(w io.Writer, report *run.Report) {
	fmt.Fprintln(w, renderSummary(lipgloss.NewRenderer(w), report))
}

func renderSummary(r *lipgloss.Renderer, report *run.Report) string {
	head := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("RELEASE · %s (id %d)", report.ReleaseTag, report.ReleaseID))

	ok := r.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	bad := r.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	dim := r.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	lines := []string{
		head,
		fmt.Sprintf("%s  %s  %s",
			ok.Render(fmt.Sprintf("uploaded %d", report.Uploaded())),
			bad.Render(fmt.Sprintf("failed %d", report.Failed())),
			dim.Render(fmt.Sprintf("skipped %d", report.Skipped())),
		),
	}

	if report.ReleaseURL != "" {
		lines = append(lines, dim.Render(report.ReleaseURL))
	}

	for _, res := range report.Results {
		if res.Err != nil {
			lines = append(lines, bad.Render(fmt.Sprintf("✗ %d: [%s] %s", res.Index+1, res.Code, res.Error)))
		}
	}

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
