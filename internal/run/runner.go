package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"release-uploader/internal/filemap"
	"release-uploader/internal/release"
	"release-uploader/internal/tagref"
)

// Config is everything a run needs besides the mapping lines.
type Config struct {
	// Release selects the target release.
	Release release.Identity
	// Tag replaces the "$tag" placeholder in mapping lines. When Release
	// selects an id, the resolved release's own tag is used instead.
	Tag       string
	Overwrite bool
	Policy    ErrorPolicy
	// Concurrency bounds how many lines are processed at once. Values
	// below 1 mean 1.
	Concurrency int
	// Glob enables pattern matching of source paths.
	Glob bool
}

// Runner executes runs against a release.Store.
type Runner struct {
	cfg        Config
	resolver   *release.Resolver
	reconciler *release.Reconciler
	logger     *slog.Logger
}

// New returns a Runner. A nil logger discards output.
func New(store release.Store, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Runner{
		cfg:        cfg,
		resolver:   release.NewResolver(store, logger),
		reconciler: release.NewReconciler(store, release.WithGlob(cfg.Glob)),
		logger:     logger,
	}
}

// Run resolves the release and processes lines. Failing to resolve the
// release is always returned as an error. Under PolicyFailFast the first
// failed line is returned as a *FatalError; under PolicySkip line failures
// are only recorded in the report. The report is non-nil whenever the
// release was resolved.
func (r *Runner) Run(ctx context.Context, lines []string) (*Report, error) {
	r.logger.Info("Looking for release...")

	rel, created, err := r.resolver.Resolve(ctx, r.cfg.Release)
	if err != nil {
		return nil, fmt.Errorf("resolve release: %w", err)
	}

	if created {
		r.logger.Info("Created release", "id", rel.ID, "tag", rel.Tag)
	} else {
		r.logger.Info("Using release", "id", rel.ID, "tag", rel.Tag)
	}

	// An explicit release id carries its own tag.
	tag := r.cfg.Tag
	if r.cfg.Release.ID != 0 {
		tag = rel.Tag
	}

	report := &Report{
		ReleaseID:  rel.ID,
		ReleaseTag: rel.Tag,
		ReleaseURL: rel.HTMLURL,
		Created:    created,
		Policy:     r.cfg.Policy.String(),
		Results:    make([]LineResult, len(lines)),
	}

	for i, line := range lines {
		report.Results[i] = LineResult{Index: i, Line: line, Skipped: true}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			res := r.process(gctx, rel, tag, i, line)
			report.Results[i] = res

			if res.Err == nil {
				return nil
			}

			if r.cfg.Policy == PolicyFailFast {
				return &FatalError{Index: i, Line: line, Err: res.Err}
			}

			r.logger.Warn("Skipping error! If you want to disable error skipping: 'skip_errors: false'",
				"line", i+1, "code", res.Code, "error", res.Err)

			return nil
		})
	}

	runErr := g.Wait()
	r.diagnose(report, tag)

	var fatal *FatalError
	if errors.As(runErr, &fatal) {
		r.logger.Error("Error occurred! If you want to enable error skipping: 'skip_errors: true'",
			"line", fatal.Index+1, "code", Classify(fatal.Err), "error", fatal.Err)

		return report, runErr
	}

	if runErr == nil {
		runErr = ctx.Err()
	}

	return report, runErr
}

func (r *Runner) process(ctx context.Context, rel *release.Release, tag string, i int, line string) LineResult {
	res := LineResult{Index: i, Line: line}

	pair, err := filemap.Parse(line)
	if err != nil {
		return res.fail(fmt.Errorf("error while parsing mapping %d: %w", i+1, err))
	}

	pair = filemap.Substitute(pair, tag)
	res.Source, res.Dest = pair.Source, pair.Dest

	r.logger.Info(fmt.Sprintf("Trying to upload file '%s' to '%s'", pair.Source, pair.Dest), "line", i+1)

	asset, err := r.reconciler.Reconcile(ctx, rel, pair, r.cfg.Overwrite)
	if err != nil {
		return res.fail(fmt.Errorf("%s: %w", pair, err))
	}

	res.URL = asset.DownloadURL
	r.logger.Info(fmt.Sprintf("Successfully uploaded %s (%s)!", pair.Source, asset.DownloadURL), "line", i+1)

	return res
}

func (res LineResult) fail(err error) LineResult {
	res.Err = err
	res.Error = err.Error()
	res.Code = Classify(err)

	return res
}

func (r *Runner) diagnose(report *Report, tag string) {
	if report.Created {
		report.Diagnostics.AddInfo(CodeReleaseCreated, fmt.Sprintf("created release %q (id %d)", report.ReleaseTag, report.ReleaseID), -1, "")
	}

	if tag != "" && !tagref.IsSemver(tag) {
		report.Diagnostics.AddInfo(CodeTagNotSemver, fmt.Sprintf("tag %q is not a semantic version", tag), -1, "")
	}

	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			report.Diagnostics.AddError(res.Code, res.Error, res.Index, res.Line)
		case res.Skipped:
			report.Diagnostics.AddWarning(CodeSkipped, "not processed after a fatal error", res.Index, res.Line)
		}
	}
}
