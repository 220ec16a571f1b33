package github

import (
	"context"
	"net/http"
	"strconv"

	"release-uploader/internal/release"
)

// ReleaseByTag fetches the published release for tag. Drafts are not
// visible through this endpoint.
func (c *Client) ReleaseByTag(ctx context.Context, tag string) (*release.Release, error) {
	return c.getRelease(ctx, c.repoURL("releases", "tags", tag))
}

// ReleaseByID fetches a release by id.
func (c *Client) ReleaseByID(ctx context.Context, id int64) (*release.Release, error) {
	return c.getRelease(ctx, c.repoURL("releases", strconv.FormatInt(id, 10)))
}

// ListReleases returns every release of the repository, drafts included.
func (c *Client) ListReleases(ctx context.Context) ([]release.Release, error) {
	var out []release.Release

	err := paginate(ctx, c, c.repoURL("releases"), func(page []apiRelease, u string) error {
		for _, r := range page {
			if err := r.validate(); err != nil {
				return &RequestError{Method: http.MethodGet, URL: u, Message: err.Error()}
			}

			out = append(out, r.model())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CreateRelease creates a release for r.Tag.
func (c *Client) CreateRelease(ctx context.Context, r release.NewRelease) (*release.Release, error) {
	u := c.repoURL("releases")
	in := apiNewRelease{
		TagName:    r.Tag,
		Name:       r.Name,
		Body:       r.Body,
		Prerelease: r.Prerelease,
		Draft:      r.Draft,
	}

	var out apiRelease
	if _, err := c.callJSON(ctx, http.MethodPost, u, in, http.StatusCreated, &out); err != nil {
		return nil, err
	}

	if err := out.validate(); err != nil {
		return nil, &RequestError{Method: http.MethodPost, URL: u, Status: http.StatusCreated, Message: err.Error()}
	}

	rel := out.model()

	return &rel, nil
}

func (c *Client) getRelease(ctx context.Context, u string) (*release.Release, error) {
	var out apiRelease
	if _, err := c.callJSON(ctx, http.MethodGet, u, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}

	if err := out.validate(); err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: u, Status: http.StatusOK, Message: err.Error()}
	}

	rel := out.model()

	return &rel, nil
}
