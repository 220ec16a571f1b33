// Package release resolves the target release and converges its assets to
// the desired mapping.
//
// Both operations are read-check-act sequences against a remote Store that
// offers no transactions. Re-running them is safe: an existing release for
// a tag is always reused, and an existing asset is either reported as a
// duplicate or deleted and uploaded again, depending on the overwrite
// policy.
//
// The list-then-upload sequence is not atomic. Another writer can attach an
// asset with the same name between the listing and the upload; the conflict
// surfaces on the next run.
package release
