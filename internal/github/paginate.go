package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// paginate follows rel="next" links starting at rawURL and hands each
// decoded page to visit.
func paginate[T any](ctx context.Context, c *Client, rawURL string, visit func(page []T, pageURL string) error) error {
	next, err := withPerPage(rawURL)
	if err != nil {
		return &RequestError{Method: http.MethodGet, URL: rawURL, Message: err.Error()}
	}

	for next != "" {
		var page []T

		header, err := c.callJSON(ctx, http.MethodGet, next, nil, http.StatusOK, &page)
		if err != nil {
			return err
		}

		if err := visit(page, next); err != nil {
			return err
		}

		next = nextLink(header.Get("Link"))
	}

	return nil
}

func withPerPage(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// nextLink extracts the rel="next" target of an RFC 8288 Link header.
func nextLink(header string) string {
	for part := range strings.SplitSeq(header, ",") {
		target, params, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok {
			continue
		}

		target = strings.TrimSpace(target)
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for p := range strings.SplitSeq(params, ";") {
			key, val, _ := strings.Cut(strings.TrimSpace(p), "=")
			if strings.TrimSpace(key) == "rel" && strings.Trim(strings.TrimSpace(val), `"`) == "next" {
				return target[1 : len(target)-1]
			}
		}
	}

	return ""
}
