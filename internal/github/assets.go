package github

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"release-uploader/internal/release"
)

// ListAssets returns every asset attached to a release.
func (c *Client) ListAssets(ctx context.Context, releaseID int64) ([]release.Asset, error) {
	var out []release.Asset

	u := c.repoURL("releases", strconv.FormatInt(releaseID, 10), "assets")
	err := paginate(ctx, c, u, func(page []apiAsset, pageURL string) error {
		for _, a := range page {
			if err := a.validate(); err != nil {
				return &RequestError{Method: http.MethodGet, URL: pageURL, Message: err.Error()}
			}

			out = append(out, a.model())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, assetID int64) error {
	u := c.repoURL("releases", "assets", strconv.FormatInt(assetID, 10))
	_, err := c.call(ctx, http.MethodDelete, u, nil, "", http.StatusNoContent, nil)

	return err
}

// UploadAsset attaches content as a new asset called name. uploadURL is the
// release's upload_url; its URI template suffix is dropped.
func (c *Client) UploadAsset(ctx context.Context, uploadURL, name string, content []byte) (*release.Asset, error) {
	u, err := assetUploadURL(uploadURL, name)
	if err != nil {
		return nil, &RequestError{Method: http.MethodPost, URL: uploadURL, Message: err.Error()}
	}

	var out apiAsset
	if _, err := c.call(ctx, http.MethodPost, u, bytes.NewReader(content), release.ContentType, http.StatusCreated, &out); err != nil {
		return nil, err
	}

	if err := out.validate(); err != nil {
		return nil, &RequestError{Method: http.MethodPost, URL: u, Status: http.StatusCreated, Message: err.Error()}
	}

	asset := out.model()

	return &asset, nil
}

// assetUploadURL turns "https://uploads.../assets{?name,label}" into
// "https://uploads.../assets?name=<name>".
func assetUploadURL(uploadURL, name string) (string, error) {
	if i := strings.IndexByte(uploadURL, '{'); i >= 0 {
		uploadURL = uploadURL[:i]
	}

	u, err := url.Parse(uploadURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
