package release

import (
	"context"
	"errors"
	"fmt"
	"os"

	"release-uploader/internal/filemap"
)

// ContentType is sent with every upload.
const ContentType = "application/octet-stream"

// Reconciler makes one asset of a release match one local file.
type Reconciler struct {
	store Store
	glob  bool
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithGlob enables pattern matching of source paths.
func WithGlob(enabled bool) Option {
	return func(r *Reconciler) {
		r.glob = enabled
	}
}

// NewReconciler returns a Reconciler over store.
func NewReconciler(store Store, opts ...Option) *Reconciler {
	r := &Reconciler{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Reconcile ensures rel holds exactly one asset named p.Dest with the
// contents of p.Source. An existing asset of that name is deleted first when
// overwrite is set, otherwise a *DuplicateAssetError is returned and nothing
// is changed.
func (r *Reconciler) Reconcile(ctx context.Context, rel *Release, p filemap.Pair, overwrite bool) (*Asset, error) {
	if rel == nil {
		return nil, errors.New("release: nil release")
	}

	source, err := resolveSource(p.Source, r.glob)
	if err != nil {
		return nil, err
	}

	assets, err := r.store.ListAssets(ctx, rel.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListAssetsFailed, err)
	}

	if existing := findAsset(assets, p.Dest); existing != nil {
		if !overwrite {
			return nil, &DuplicateAssetError{Name: existing.Name, URL: existing.DownloadURL}
		}

		if err := r.store.DeleteAsset(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("release: delete asset %q (id %d): %w", existing.Name, existing.ID, err)
		}
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSourceNotFound, source, err)
	}

	asset, err := r.store.UploadAsset(ctx, rel.UploadURL, p.Dest, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return asset, nil
}

func findAsset(assets []Asset, name string) *Asset {
	for i := range assets {
		if assets[i].Name == name {
			return &assets[i]
		}
	}

	return nil
}
