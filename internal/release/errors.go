package release

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the Store's "no such object" signal.
	ErrNotFound = errors.New("not found")
	// ErrRequest marks any other failed remote call.
	ErrRequest = errors.New("request failed")

	ErrReleaseNotFound  = errors.New("release not found")
	ErrSourceNotFound   = errors.New("file doesn't exist, or is a directory")
	ErrListAssetsFailed = errors.New("couldn't list release assets")
	ErrDuplicateAsset   = errors.New("duplicate asset")
	ErrUploadFailed     = errors.New("failed to upload asset")
)

// DuplicateAssetError reports an existing asset that was left in place
// because overwrite is disabled.
type DuplicateAssetError struct {
	Name string
	// URL is the download URL of the asset already in the release.
	URL string
}

func (e *DuplicateAssetError) Error() string {
	return fmt.Sprintf("duplicate asset %q without overwrite=true (existing: %s)", e.Name, e.URL)
}

// Is lets errors.Is(err, ErrDuplicateAsset) match.
func (e *DuplicateAssetError) Is(target error) bool {
	return target == ErrDuplicateAsset
}
