// Package main provides the CLI entrypoint for release-uploader.
//
// release-uploader publishes local files as assets of a repository release:
//   - Finds the release by tag or id, creating a missing tagged release
//   - Reads "source>destination" mapping lines with $tag substitution
//   - Uploads each file, refusing or replacing existing assets
//   - Exposes uploaded URLs as step outputs
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"release-uploader/internal/config"
	"release-uploader/internal/github"
	"release-uploader/internal/logging"
	"release-uploader/internal/output"
	"release-uploader/internal/release"
	"release-uploader/internal/run"
	"release-uploader/internal/tagref"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

// usageError marks configuration and invocation problems.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// reportedError is a failure that has already been logged.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	a := &app{environ: environ, stdout: stdout, stderr: stderr}

	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	var (
		ue *usageError
		re *reportedError
	)

	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	case errors.As(err, &re):
		return exitFatal
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFatal
	}
}

type app struct {
	environ []string
	stdout  io.Writer
	stderr  io.Writer
	flags   flagValues
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release-uploader",
		Short: "Upload files as release assets",
		Long: `Upload local files to a repository release.

Each mapping line has the form "source>destination". "$tag" in either side is
replaced by the release tag, and "\>" is a literal '>'. Options come from
defaults, then --config, then INPUT_* environment variables, then flags.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{err: err}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	a.flags.register(cmd)

	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command) (config.Config, config.Repository, error) {
	cfg := config.Defaults()

	if a.flags.configPath != "" {
		ov, err := config.LoadFile(a.flags.configPath)
		if err != nil {
			return cfg, config.Repository{}, err
		}

		cfg = config.Apply(cfg, ov)
	}

	env, err := config.FromEnv(a.environ)
	if err != nil {
		return cfg, config.Repository{}, err
	}

	cfg = config.Apply(cfg, env)
	cfg = config.Override(cfg, a.flags.overlay(cmd))

	if cfg.NormalizeTag {
		cfg.Tag = tagref.Normalize(cfg.Tag)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, config.Repository{}, err
	}

	repo, err := config.ResolveRepository(cfg.Repository, a.getenv("GITHUB_REPOSITORY"))

	return cfg, repo, err
}

// getenv returns a lookup of key in the captured environment.
func (a *app) getenv(key string) func() string {
	return func() string {
		prefix := key + "="
		for i := len(a.environ) - 1; i >= 0; i-- {
			if kv := a.environ[i]; strings.HasPrefix(kv, prefix) {
				return strings.TrimPrefix(kv, prefix)
			}
		}

		return ""
	}
}

func (a *app) run(cmd *cobra.Command) error {
	cfg, repo, err := a.loadConfig(cmd)
	if err != nil {
		return &usageError{err: err}
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, a.stdout)
	if err != nil {
		return &usageError{err: err}
	}

	if cfg.LogFormat == config.FormatActions {
		if err := logging.AddMask(a.stdout, cfg.Token); err != nil {
			return err
		}
	}

	logger = logger.With("run_id", uuid.NewString())
	logger.Debug("effective configuration", "repository", repo.String(), "config", dumper.Sdump(cfg.Redacted()))

	if cfg.ReleaseID == 0 {
		switch {
		case !tagref.IsSemver(cfg.Tag):
			logger.Debug("Tag is not a semantic version", "tag", cfg.Tag)
		case tagref.IsPrerelease(cfg.Tag) && !cfg.Prerelease:
			logger.Debug("Tag has a pre-release suffix but prerelease is false", "tag", cfg.Tag)
		}
	}

	client, err := github.New(github.Options{
		BaseURL: cfg.APIURL,
		Token:   cfg.Token,
		Owner:   repo.Owner,
		Repo:    repo.Repo,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return &usageError{err: err}
	}

	runner := run.New(client, runConfig(cfg), logger)
	report, runErr := runner.Run(cmd.Context(), cfg.FileMap)

	if err := a.publish(cfg, report, logger); err != nil && runErr == nil {
		runErr = err
	}

	if report != nil {
		writeSummary(a.stderr, report)
	}

	if runErr == nil {
		return nil
	}

	var fatal *run.FatalError
	if !errors.As(runErr, &fatal) {
		logger.Error("Upload failed", "error", runErr)
	}

	return &reportedError{err: runErr}
}

func (a *app) publish(cfg config.Config, report *run.Report, logger *slog.Logger) error {
	if path := a.getenv("GITHUB_OUTPUT")(); path != "" {
		if err := output.AppendFile(path, output.FromReport(report)); err != nil {
			return err
		}

		logger.Debug("Wrote step outputs", "path", path)
	}

	if a.flags.reportPath != "" && report != nil {
		if err := output.WriteReport(a.flags.reportPath, report); err != nil {
			return err
		}

		logger.Debug("Wrote report", "path", a.flags.reportPath)
	}

	return nil
}

func runConfig(cfg config.Config) run.Config {
	id := release.ByTag(cfg.Tag, release.Spec{
		Name:       cfg.ReleaseName,
		Body:       cfg.ReleaseBody,
		Prerelease: cfg.Prerelease,
		Draft:      cfg.Draft,
	})
	if cfg.ReleaseID != 0 {
		id = release.ByID(cfg.ReleaseID)
	}

	return run.Config{
		Release:     id,
		Tag:         cfg.Tag,
		Overwrite:   cfg.Overwrite,
		Policy:      run.PolicyFor(cfg.SkipErrors),
		Concurrency: cfg.Concurrency,
		Glob:        cfg.Glob,
	}
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}
