package release_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-uploader/internal/filemap"
	"release-uploader/internal/release"
	"release-uploader/internal/release/releasetest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestReconcileUploadsNewAsset(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "app.zip", "payload")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})

	asset, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "app.zip"}, false)
	require.NoError(t, err)

	assert.Equal(t, "app.zip", asset.Name)
	assert.Equal(t, int64(7), asset.Size)
	assert.NotEmpty(t, asset.DownloadURL)

	require.Len(t, store.Uploads, 1)
	assert.Equal(t, rel.ID, store.Uploads[0].ReleaseID)
	assert.Equal(t, "payload", string(store.Uploads[0].Content))
	assert.Equal(t, 0, store.Count(releasetest.OpDeleteAsset))
}

func TestReconcileDuplicateWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "app.zip", "payload")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	old := store.AddAsset(rel.ID, "app.zip")

	_, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "app.zip"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrDuplicateAsset)

	var dup *release.DuplicateAssetError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, old.DownloadURL, dup.URL)

	assert.Equal(t, 0, store.Count(releasetest.OpDeleteAsset))
	assert.Equal(t, 0, store.Count(releasetest.OpUploadAsset))
}

func TestReconcileDuplicateWithOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "app.zip", "new")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	old := store.AddAsset(rel.ID, "app.zip")
	other := store.AddAsset(rel.ID, "other.zip")

	asset, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "app.zip"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		releasetest.OpListAssets,
		releasetest.OpDeleteAsset,
		releasetest.OpUploadAsset,
	}, store.Ops, "delete must precede upload")
	assert.Equal(t, []int64{old.ID}, store.Deleted)
	assert.NotEqual(t, old.ID, asset.ID)

	names := []string{}
	for _, a := range store.Assets(rel.ID) {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{other.Name, "app.zip"}, names)
}

func TestStoreRejectsDuplicateUpload(t *testing.T) {
	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	store.AddAsset(rel.ID, "app.zip")

	_, err := store.UploadAsset(context.Background(), rel.UploadURL, "app.zip", []byte("x"))
	require.ErrorIs(t, err, release.ErrRequest)
	assert.Empty(t, store.Uploads)
}

func TestReconcileNameMatchIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "app.zip", "x")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	store.AddAsset(rel.ID, "APP.zip")

	_, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "app.zip"}, false)
	require.NoError(t, err)
	assert.Len(t, store.Assets(rel.ID), 2)
}

func TestReconcileSourceNotFound(t *testing.T) {
	dir := t.TempDir()

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	rc := release.NewReconciler(store)

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", filepath.Join(dir, "nope.bin")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rc.Reconcile(context.Background(), &rel, filemap.Pair{Source: tt.source, Dest: "x"}, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, release.ErrSourceNotFound)
		})
	}

	assert.Equal(t, 0, store.Count(releasetest.OpListAssets))
}

func TestReconcileListFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a", "x")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	store.Fail[releasetest.OpListAssets] = release.ErrRequest

	_, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "a"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrListAssetsFailed)
	assert.ErrorIs(t, err, release.ErrRequest)
	assert.Equal(t, 0, store.Count(releasetest.OpUploadAsset))
}

func TestReconcileUploadFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a", "x")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	store.Fail[releasetest.OpUploadAsset] = release.ErrRequest

	_, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "a"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrUploadFailed)
}

func TestReconcileDeleteFailure(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a", "x")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})
	store.AddAsset(rel.ID, "a")
	store.Fail[releasetest.OpDeleteAsset] = release.ErrRequest

	_, err := release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: src, Dest: "a"}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrRequest)
	assert.Equal(t, 0, store.Count(releasetest.OpUploadAsset))
}

func TestReconcileGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dist/app-1.2.3.tar.gz", "tarball")
	writeFile(t, dir, "dist/lib-a.so", "a")
	writeFile(t, dir, "dist/lib-b.so", "b")

	store := releasetest.New()
	rel := store.AddRelease(release.Release{Tag: "v1"})

	globbing := release.NewReconciler(store, release.WithGlob(true))

	_, err := globbing.Reconcile(context.Background(), &rel, filemap.Pair{Source: filepath.Join(dir, "dist", "app-*.tar.gz"), Dest: "app.tar.gz"}, false)
	require.NoError(t, err)
	require.Len(t, store.Uploads, 1)
	assert.Equal(t, "tarball", string(store.Uploads[0].Content))

	_, err = globbing.Reconcile(context.Background(), &rel, filemap.Pair{Source: filepath.Join(dir, "**", "lib-*.so"), Dest: "lib.so"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "matches 2 files")

	_, err = globbing.Reconcile(context.Background(), &rel, filemap.Pair{Source: filepath.Join(dir, "*.exe"), Dest: "x.exe"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrSourceNotFound)

	// Without glob mode the pattern is a literal path.
	_, err = release.NewReconciler(store).Reconcile(context.Background(), &rel, filemap.Pair{Source: filepath.Join(dir, "dist", "app-*.tar.gz"), Dest: "y"}, false)
	assert.ErrorIs(t, err, release.ErrSourceNotFound)
}
