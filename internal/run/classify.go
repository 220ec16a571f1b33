package run

import (
	"context"
	"errors"

	"release-uploader/internal/filemap"
	"release-uploader/internal/release"
)

// Diagnostic codes recorded for failed lines.
const (
	CodeParse           = "parse_error"
	CodeReleaseNotFound = "release_not_found"
	CodeSourceNotFound  = "source_not_found"
	CodeListAssets      = "list_assets_failed"
	CodeDuplicateAsset  = "duplicate_asset"
	CodeUploadFailed    = "upload_failed"
	CodeRequest         = "request_error"
	CodeCanceled        = "canceled"
	CodeUnknown         = "unknown"

	CodeSkipped        = "skipped"
	CodeReleaseCreated = "release_created"
	CodeTagNotSemver   = "tag_not_semver"
)

// Classify maps an error to its diagnostic code. Cancellation wins over the
// step that was interrupted, and specific failures win over the generic
// request error they may wrap.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case errors.Is(err, filemap.ErrParse):
		return CodeParse
	case errors.Is(err, release.ErrSourceNotFound):
		return CodeSourceNotFound
	case errors.Is(err, release.ErrListAssetsFailed):
		return CodeListAssets
	case errors.Is(err, release.ErrDuplicateAsset):
		return CodeDuplicateAsset
	case errors.Is(err, release.ErrUploadFailed):
		return CodeUploadFailed
	case errors.Is(err, release.ErrReleaseNotFound):
		return CodeReleaseNotFound
	case errors.Is(err, release.ErrRequest):
		return CodeRequest
	default:
		return CodeUnknown
	}
}
