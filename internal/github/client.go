package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Client is a minimal wrapper around GitHub's REST API v3. It is
// intentionally light—just the endpoints the ingestion pipeline requires.
// Every call is wrapped in a rate-limit-aware retry policy.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
	log     *slog.Logger
}

// NewClient returns a ready-to-use GitHub API client. token may be empty,
// but unauthenticated requests are subject to very low rate limits.
func NewClient(token string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		token:   token,
		baseURL: defaultBaseURL,
		log:     log,
	}
}

// SearchParams qualifies a repository search.
type SearchParams struct {
	Language     string
	MinStars     int
	Topic        string
	CreatedAfter string // YYYY-MM-DD, adds a created:>= qualifier
	Page         int    // 1-based, defaults to 1
	PerPage      int    // defaults to 30, max 100
	Sort         string // "stars" | "forks" | "updated"
	Order        string // "asc" | "desc"
}

// SearchResult is one page of repository search results.
type SearchResult struct {
	TotalCount  int
	Items       []Repository
	HasNextPage bool
}

// SearchRepositories searches repositories by language, minimum stars and/or
// topic, returning one page of results.
func (c *Client) SearchRepositories(ctx context.Context, params SearchParams) (SearchResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = 30
	}
	sort := params.Sort
	if sort == "" {
		sort = "stars"
	}
	order := params.Order
	if order == "" {
		order = "desc"
	}

	var qualifiers []string
	if params.Language != "" {
		qualifiers = append(qualifiers, "language:"+params.Language)
	}
	if params.MinStars > 0 {
		qualifiers = append(qualifiers, fmt.Sprintf("stars:>=%d", params.MinStars))
	}
	if params.Topic != "" {
		qualifiers = append(qualifiers, "topic:"+params.Topic)
	}
	if params.CreatedAfter != "" {
		qualifiers = append(qualifiers, "created:>="+params.CreatedAfter)
	}
	q := "stars:>=100"
	if len(qualifiers) > 0 {
		q = strings.Join(qualifiers, " ")
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("sort", sort)
	query.Set("order", order)
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	type searchResponse struct {
		TotalCount int          `json:"total_count"`
		Items      []Repository `json:"items"`
	}

	resp, err := withRetry(ctx, c.log, func() (searchResponse, error) {
		var out searchResponse
		err := c.get(ctx, "/search/repositories?"+query.Encode(), &out)
		return out, err
	})
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		TotalCount:  resp.TotalCount,
		Items:       resp.Items,
		HasNextPage: page*perPage < resp.TotalCount,
	}, nil
}

// FetchReadme returns the decoded README content for a repository, or the
// empty string when the repository has none (404 is not an error).
func (c *Client) FetchReadme(ctx context.Context, owner, name string) (string, error) {
	type readmeResponse struct {
		Content string `json:"content"`
	}

	path := fmt.Sprintf("/repos/%s/%s/readme", url.PathEscape(owner), url.PathEscape(name))
	resp, err := withRetry(ctx, c.log, func() (readmeResponse, error) {
		var out readmeResponse
		err := c.get(ctx, path, &out)
		return out, err
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", err
	}
	if resp.Content == "" {
		return "", nil
	}

	// The contents API wraps base64 payloads across lines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("github: decoding readme for %s/%s: %w", owner, name, err)
	}
	return string(decoded), nil
}

// FetchOpenIssues returns up to perPage open issues for a repository, most
// recently updated first. Pull requests returned by the issues endpoint are
// filtered out.
func (c *Client) FetchOpenIssues(ctx context.Context, owner, name string, perPage int) ([]Issue, error) {
	if perPage <= 0 {
		perPage = 100
	}

	query := url.Values{}
	query.Set("state", "open")
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("sort", "updated")
	query.Set("direction", "desc")

	path := fmt.Sprintf("/repos/%s/%s/issues?%s",
		url.PathEscape(owner), url.PathEscape(name), query.Encode())

	raw, err := withRetry(ctx, c.log, func() ([]Issue, error) {
		var out []Issue
		err := c.get(ctx, path, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(raw))
	for _, issue := range raw {
		if issue.IsPullRequest() {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// FetchLanguages returns the language breakdown of a repository as a map of
// language name to byte count.
func (c *Client) FetchLanguages(ctx context.Context, owner, name string) (map[string]int, error) {
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(name))
	return withRetry(ctx, c.log, func() (map[string]int, error) {
		var out map[string]int
		err := c.get(ctx, path, &out)
		return out, err
	})
}

// get executes a GET request against the API and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gitmatch-ingest")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				apiErr.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
