package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Spec is the metadata used when a release has to be created.
type Spec struct {
	Name       string
	Body       string
	Prerelease bool
	Draft      bool
}

// Identity selects a release either by explicit id or by tag.
type Identity struct {
	ID   int64
	Tag  string
	Spec Spec
}

// ByID selects an existing release; it is never created.
func ByID(id int64) Identity {
	return Identity{ID: id}
}

// ByTag selects the release for tag, creating it from spec when missing.
func ByTag(tag string, spec Spec) Identity {
	return Identity{Tag: tag, Spec: spec}
}

// Resolver finds or creates the release a run uploads to.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver returns a Resolver over store. A nil logger discards output.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{store: store, logger: logger}
}

// Resolve returns the release for id and whether it was created by this
// call. An existing release always wins over creation, and its metadata is
// never updated to match the requested spec.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (*Release, bool, error) {
	if id.ID != 0 {
		rel, err := r.byID(ctx, id.ID)
		return rel, false, err
	}

	if id.Tag == "" {
		return nil, false, errors.New("release: tag or release id is required")
	}

	rel, err := r.store.ReleaseByTag(ctx, id.Tag)
	switch {
	case err == nil:
		r.logger.Debug("Found release", "id", rel.ID, "tag", rel.Tag)
		return rel, false, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, fmt.Errorf("release: fetch tag %q: %w", id.Tag, err)
	}

	// Drafts are invisible to the tag lookup; look for one left by an
	// earlier run before creating another.
	draft, err := r.findDraft(ctx, id.Tag)
	if err != nil {
		return nil, false, err
	}

	if draft != nil {
		r.logger.Debug("Found draft release", "id", draft.ID, "tag", draft.Tag)
		return draft, false, nil
	}

	r.logger.Debug("Release not found! Creating it...", "tag", id.Tag)

	name := id.Spec.Name
	if name == "" {
		name = id.Tag
	}

	created, err := r.store.CreateRelease(ctx, NewRelease{
		Tag:        id.Tag,
		Name:       name,
		Body:       id.Spec.Body,
		Prerelease: id.Spec.Prerelease,
		Draft:      id.Spec.Draft,
	})
	if err != nil {
		return nil, false, fmt.Errorf("release: create tag %q: %w", id.Tag, err)
	}

	return created, true, nil
}

func (r *Resolver) byID(ctx context.Context, id int64) (*Release, error) {
	rel, err := r.store.ReleaseByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrReleaseNotFound, id)
		}

		return nil, fmt.Errorf("release: fetch id %d: %w", id, err)
	}

	r.logger.Debug("Found release", "id", rel.ID, "tag", rel.Tag)

	return rel, nil
}

func (r *Resolver) findDraft(ctx context.Context, tag string) (*Release, error) {
	all, err := r.store.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("release: list releases: %w", err)
	}

	for i := range all {
		if all[i].Draft && all[i].Tag == tag {
			return &all[i], nil
		}
	}

	return nil, nil
}
