// Package github implements release.Store over the GitHub REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"release-uploader/internal/release"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://api.github.com"

	apiVersion = "2022-11-28"
	mediaType  = "application/vnd.github+json"
	userAgent  = "release-uploader"
	perPage    = 100
)

// Options configure a Client.
type Options struct {
	BaseURL string
	Token   string
	Owner   string
	Repo    string
	// Timeout bounds each request including the body transfer. Zero
	// disables the limit.
	Timeout time.Duration
	// HTTPClient replaces the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

var _ release.Store = (*Client)(nil)

// Client talks to one repository.
type Client struct {
	hc      *http.Client
	baseURL string
	token   string
	owner   string
	repo    string
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, errors.New("github: token is required")
	}

	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("github: owner and repo are required")
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("github: base url: %w", err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		hc:      hc,
		baseURL: base,
		token:   opts.Token,
		owner:   opts.Owner,
		repo:    opts.Repo,
	}, nil
}

// RequestError is a failed API call. It matches release.ErrRequest, and
// release.ErrNotFound when the status is 404.
type RequestError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
	}

	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
	}

	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Message)
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case release.ErrRequest:
		return true
	case release.ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}

// repoURL joins path segments below /repos/{owner}/{repo}.
func (c *Client) repoURL(segments ...string) string {
	var b strings.Builder

	b.WriteString(c.baseURL)
	b.WriteString("/repos/")
	b.WriteString(url.PathEscape(c.owner))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(c.repo))

	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}

	return b.String()
}

// call sends one request and decodes a JSON body into out when non-nil.
// Any status other than want becomes a *RequestError.
func (c *Client) call(ctx context.Context, method, rawURL string, body io.Reader, contentType string, want int, out any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &RequestError{Method: method, URL: rawURL, Message: err.Error()}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", mediaType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, &RequestError{Method: method, URL: rawURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return nil, &RequestError{
			Method:  method,
			URL:     rawURL,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, &RequestError{
			Method:  method,
			URL:     rawURL,
			Status:  resp.StatusCode,
			Message: "decode response: " + err.Error(),
		}
	}

	return resp.Header, nil
}

func (c *Client) callJSON(ctx context.Context, method, rawURL string, in any, want int, out any) (http.Header, error) {
	if in == nil {
		return c.call(ctx, method, rawURL, nil, "", want, out)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return nil, &RequestError{Method: method, URL: rawURL, Message: "encode request: " + err.Error()}
	}

	return c.call(ctx, method, rawURL, bytes.NewReader(b), "application/json", want, out)
}

// errorMessage extracts the API's "message" field, falling back to a short
// prefix of the raw body.
func errorMessage(body io.Reader) string {
	slurp, _ := io.ReadAll(io.LimitReader(body, 4<<10))

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(slurp, &payload) == nil && payload.Message != "" {
		return payload.Message
	}

	return strings.TrimSpace(string(slurp))
}
