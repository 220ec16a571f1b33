// Package releasetest provides an in-memory release.Store for tests.
package releasetest

import (
	"context"
	"fmt"
	"sync"

	"release-uploader/internal/release"
)

// Operation names used by Store.Count and Store.Fail.
const (
	OpReleaseByTag  = "ReleaseByTag"
	OpReleaseByID   = "ReleaseByID"
	OpListReleases  = "ListReleases"
	OpCreateRelease = "CreateRelease"
	OpListAssets    = "ListAssets"
	OpDeleteAsset   = "DeleteAsset"
	OpUploadAsset   = "UploadAsset"
)

const baseURL = "https://example.test"

// Upload records one UploadAsset call.
type Upload struct {
	ReleaseID int64
	Name      string
	Content   []byte
}

// Store keeps releases and assets in memory and counts calls. Like the
// real API, ReleaseByTag does not return drafts and UploadAsset rejects a
// name the release already has.
type Store struct {
	mu sync.Mutex

	releases []release.Release
	assets   map[int64][]release.Asset
	nextID   int64
	calls    map[string]int

	// Ops lists every operation called, in call order.
	Ops []string
	// Deleted lists asset ids passed to DeleteAsset, in call order.
	Deleted []int64
	// Uploads lists successful uploads, in call order.
	Uploads []Upload
	// Fail makes the named operation return the error.
	Fail map[string]error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		assets: make(map[int64][]release.Asset),
		calls:  make(map[string]int),
		Fail:   make(map[string]error),
	}
}

// AddRelease seeds a release and returns it with id and upload URL set.
func (s *Store) AddRelease(r release.Release) release.Release {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addRelease(r)
}

// AddAsset seeds an asset on the release.
func (s *Store) AddAsset(releaseID int64, name string) release.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addAsset(releaseID, name, 0)
}

// Count returns how many times op was called.
func (s *Store) Count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[op]
}

// Releases returns a copy of all releases.
func (s *Store) Releases() []release.Release {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]release.Release(nil), s.releases...)
}

// Assets returns a copy of the assets on a release.
func (s *Store) Assets(releaseID int64) []release.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]release.Asset(nil), s.assets[releaseID]...)
}

func (s *Store) ReleaseByTag(_ context.Context, tag string) (*release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpReleaseByTag); err != nil {
		return nil, err
	}

	for i := range s.releases {
		if s.releases[i].Tag == tag && !s.releases[i].Draft {
			r := s.releases[i]
			return &r, nil
		}
	}

	return nil, fmt.Errorf("tag %q: %w", tag, release.ErrNotFound)
}

func (s *Store) ReleaseByID(_ context.Context, id int64) (*release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpReleaseByID); err != nil {
		return nil, err
	}

	for i := range s.releases {
		if s.releases[i].ID == id {
			r := s.releases[i]
			return &r, nil
		}
	}

	return nil, fmt.Errorf("id %d: %w", id, release.ErrNotFound)
}

func (s *Store) ListReleases(context.Context) ([]release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpListReleases); err != nil {
		return nil, err
	}

	return append([]release.Release(nil), s.releases...), nil
}

func (s *Store) CreateRelease(_ context.Context, nr release.NewRelease) (*release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpCreateRelease); err != nil {
		return nil, err
	}

	r := s.addRelease(release.Release{
		Tag:        nr.Tag,
		Name:       nr.Name,
		Draft:      nr.Draft,
		Prerelease: nr.Prerelease,
	})

	return &r, nil
}

func (s *Store) ListAssets(_ context.Context, releaseID int64) ([]release.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpListAssets); err != nil {
		return nil, err
	}

	return append([]release.Asset(nil), s.assets[releaseID]...), nil
}

func (s *Store) DeleteAsset(_ context.Context, assetID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpDeleteAsset); err != nil {
		return err
	}

	for rid, list := range s.assets {
		for i := range list {
			if list[i].ID == assetID {
				s.assets[rid] = append(list[:i:i], list[i+1:]...)
				s.Deleted = append(s.Deleted, assetID)

				return nil
			}
		}
	}

	return fmt.Errorf("asset %d: %w", assetID, release.ErrRequest)
}

func (s *Store) UploadAsset(_ context.Context, uploadURL, name string, content []byte) (*release.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(OpUploadAsset); err != nil {
		return nil, err
	}

	for i := range s.releases {
		if s.releases[i].UploadURL == uploadURL {
			rid := s.releases[i].ID

			for _, existing := range s.assets[rid] {
				if existing.Name == name {
					return nil, fmt.Errorf("asset %q already exists: %w", name, release.ErrRequest)
				}
			}

			a := s.addAsset(rid, name, int64(len(content)))
			s.Uploads = append(s.Uploads, Upload{ReleaseID: rid, Name: name, Content: content})

			return &a, nil
		}
	}

	return nil, fmt.Errorf("upload url %q: %w", uploadURL, release.ErrRequest)
}

func (s *Store) enter(op string) error {
	s.calls[op]++
	s.Ops = append(s.Ops, op)

	return s.Fail[op]
}

func (s *Store) addRelease(r release.Release) release.Release {
	s.nextID++
	if r.ID == 0 {
		r.ID = s.nextID
	}

	if r.UploadURL == "" {
		r.UploadURL = fmt.Sprintf("%s/uploads/releases/%d/assets", baseURL, r.ID)
	}

	s.releases = append(s.releases, r)

	return r
}

func (s *Store) addAsset(releaseID int64, name string, size int64) release.Asset {
	s.nextID++

	tag := ""
	for i := range s.releases {
		if s.releases[i].ID == releaseID {
			tag = s.releases[i].Tag
		}
	}

	a := release.Asset{
		ID:          s.nextID,
		Name:        name,
		Size:        size,
		DownloadURL: fmt.Sprintf("%s/download/%s/%s", baseURL, tag, name),
	}
	s.assets[releaseID] = append(s.assets[releaseID], a)

	return a
}

var _ release.Store = (*Store)(nil)
