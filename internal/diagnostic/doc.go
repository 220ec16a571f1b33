// Package diagnostic collects structured per-line outcomes of a run.
//
// Key capabilities:
//   - Failed mapping lines with a stable error code
//   - Lines skipped after a fatal error
//   - Informational notes (created release, tag not semver)
package diagnostic
