package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.github.com"

type restClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option tweaks the REST client; used by tests to point at a fake
// server.
type Option func(*restClient)

func WithBaseURL(u string) Option {
	return func(c *restClient) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *restClient) { c.http = h }
}

// NewRESTClient builds a GitHub REST API v3 client. Token is optional;
// without it the unauthenticated rate limit applies.
func NewRESTClient(token string, opts ...Option) Client {
	c := &restClient{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *restClient) ListRecentRepos(ctx context.Context, username string, limit int) ([]Repo, error) {
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("sort", "created")
	q.Set("direction", "desc")

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("github: unexpected status %d for user %q", res.StatusCode, username)
	}

	var repos []Repo
	if err := json.NewDecoder(res.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: decode response: %w", err)
	}
	return repos, nil
}
