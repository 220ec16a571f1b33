package release

import "context"

// Release is a tagged publication point that holds assets.
type Release struct {
	ID         int64
	Tag        string
	Name       string
	UploadURL  string
	HTMLURL    string
	Draft      bool
	Prerelease bool
}

// Asset is a named file attached to a release.
type Asset struct {
	ID          int64
	Name        string
	Size        int64
	DownloadURL string
}

// NewRelease describes a release to create.
type NewRelease struct {
	Tag        string
	Name       string
	Body       string
	Prerelease bool
	Draft      bool
}

// Store is the remote release/asset API. Lookups that miss return an error
// matching ErrNotFound; every other remote failure matches ErrRequest.
type Store interface {
	ReleaseByTag(ctx context.Context, tag string) (*Release, error)
	ReleaseByID(ctx context.Context, id int64) (*Release, error)
	ListReleases(ctx context.Context) ([]Release, error)
	CreateRelease(ctx context.Context, r NewRelease) (*Release, error)
	ListAssets(ctx context.Context, releaseID int64) ([]Asset, error)
	DeleteAsset(ctx context.Context, assetID int64) error
	UploadAsset(ctx context.Context, uploadURL, name string, content []byte) (*Asset, error)
}
