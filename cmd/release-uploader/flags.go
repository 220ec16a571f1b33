package main

import (
	"time"

	"github.com/spf13/cobra"

	"release-uploader/internal/config"
	"release-uploader/internal/filemap"
)

type flagValues struct {
	configPath string
	reportPath string

	token        string
	fileMap      []string
	releaseName  string
	releaseBody  string
	prerelease   bool
	draft        bool
	tag          string
	releaseID    int64
	skipErrors   bool
	overwrite    bool
	repository   string
	apiURL       string
	concurrency  int
	glob         bool
	normalizeTag bool
	timeout      time.Duration
	logLevel     string
	logFormat    string
}

func (f *flagValues) register(cmd *cobra.Command) {
	d := config.Defaults()
	fl := cmd.Flags()

	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&f.reportPath, "report", "", "Write a YAML run report to this path")

	fl.StringVar(&f.token, "token", "", "API token")
	fl.StringArrayVarP(&f.fileMap, "filemap", "f", nil, "Mapping line 'source>destination' (repeatable)")
	fl.StringVar(&f.releaseName, "release-name", "", "Name of a created release (defaults to the tag)")
	fl.StringVar(&f.releaseBody, "release-body", "", "Body of a created release")
	fl.BoolVar(&f.prerelease, "prerelease", d.Prerelease, "Mark a created release as prerelease")
	fl.BoolVar(&f.draft, "draft", d.Draft, "Create missing releases as drafts")
	fl.StringVarP(&f.tag, "tag", "t", d.Tag, "Release tag, also substituted for $tag")
	fl.Int64Var(&f.releaseID, "release-id", 0, "Upload to this existing release instead of looking up the tag")
	fl.BoolVar(&f.skipErrors, "skip-errors", d.SkipErrors, "Continue with the next line when one fails")
	fl.BoolVar(&f.overwrite, "overwrite", d.Overwrite, "Replace assets that already exist")
	fl.StringVarP(&f.repository, "repository", "r", "", "Repository as owner/repo (defaults to $GITHUB_REPOSITORY)")
	fl.StringVar(&f.apiURL, "api-url", d.APIURL, "API base URL")
	fl.IntVarP(&f.concurrency, "concurrency", "j", d.Concurrency, "Number of lines processed at once")
	fl.BoolVar(&f.glob, "glob", d.Glob, "Treat sources as glob patterns matching exactly one file")
	fl.BoolVar(&f.normalizeTag, "normalize-tag", d.NormalizeTag, "Strip a refs/tags/ prefix from the tag")
	fl.DurationVar(&f.timeout, "timeout", d.Timeout, "Timeout of each API request (0 disables)")
	fl.StringVar(&f.logLevel, "log-level", d.LogLevel, "Log level: debug|info|warn|error")
	fl.StringVar(&f.logFormat, "log-format", d.LogFormat, "Log format: actions|text|json")
}

// overlay returns the flags the user actually set.
func (f *flagValues) overlay(cmd *cobra.Command) config.Overlay {
	var ov config.Overlay

	changed := cmd.Flags().Changed

	if changed("token") {
		ov.Token = &f.token
	}

	if changed("filemap") {
		var lines []string
		for _, v := range f.fileMap {
			lines = append(lines, filemap.ParseLines(v)...)
		}

		ov.FileMap = config.Lines(lines)
		if ov.FileMap == nil {
			ov.FileMap = config.Lines{}
		}
	}

	if changed("release-name") {
		ov.ReleaseName = &f.releaseName
	}

	if changed("release-body") {
		ov.ReleaseBody = &f.releaseBody
	}

	if changed("prerelease") {
		ov.Prerelease = &f.prerelease
	}

	if changed("draft") {
		ov.Draft = &f.draft
	}

	if changed("tag") {
		ov.Tag = &f.tag
	}

	if changed("release-id") {
		ov.ReleaseID = &f.releaseID
	}

	if changed("skip-errors") {
		ov.SkipErrors = &f.skipErrors
	}

	if changed("overwrite") {
		ov.Overwrite = &f.overwrite
	}

	if changed("repository") {
		ov.Repository = &f.repository
	}

	if changed("api-url") {
		ov.APIURL = &f.apiURL
	}

	if changed("concurrency") {
		ov.Concurrency = &f.concurrency
	}

	if changed("glob") {
		ov.Glob = &f.glob
	}

	if changed("normalize-tag") {
		ov.NormalizeTag = &f.normalizeTag
	}

	if changed("timeout") {
		ov.Timeout = &f.timeout
	}

	if changed("log-level") {
		ov.LogLevel = &f.logLevel
	}

	if changed("log-format") {
		ov.LogFormat = &f.logFormat
	}

	return ov
}
