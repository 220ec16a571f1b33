package github

import (
	"errors"

	"release-uploader/internal/release"
)

type apiRelease struct {
	ID         int64  `json:"id"`
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	UploadURL  string `json:"upload_url"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

type apiAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type apiNewRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name,omitempty"`
	Body       string `json:"body,omitempty"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

func (r apiRelease) validate() error {
	switch {
	case r.ID <= 0:
		return errors.New("malformed release: missing id")
	case r.TagName == "":
		return errors.New("malformed release: missing tag_name")
	case r.UploadURL == "":
		return errors.New("malformed release: missing upload_url")
	}

	return nil
}

func (r apiRelease) model() release.Release {
	return release.Release{
		ID:         r.ID,
		Tag:        r.TagName,
		Name:       r.Name,
		UploadURL:  r.UploadURL,
		HTMLURL:    r.HTMLURL,
		Draft:      r.Draft,
		Prerelease: r.Prerelease,
	}
}

func (a apiAsset) validate() error {
	switch {
	case a.ID <= 0:
		return errors.New("malformed asset: missing id")
	case a.Name == "":
		return errors.New("malformed asset: missing name")
	case a.BrowserDownloadURL == "":
		return errors.New("malformed asset: missing browser_download_url")
	}

	return nil
}

func (a apiAsset) model() release.Asset {
	return release.Asset{
		ID:          a.ID,
		Name:        a.Name,
		Size:        a.Size,
		DownloadURL: a.BrowserDownloadURL,
	}
}
