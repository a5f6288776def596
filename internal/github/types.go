package github

import (
	"encoding/json"
	"time"
)

// Repository is the raw shape returned by GitHub's search API. Only the
// fields the pipeline consumes are decoded.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Language        string    `json:"language"`
	Topics          []string  `json:"topics"`
	License         *License  `json:"license"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
	Owner           Owner     `json:"owner"`
}

// License carries the SPDX identifier of a repository license.
type License struct {
	SPDXID string `json:"spdx_id"`
}

// Owner identifies the account owning a repository.
type Owner struct {
	Login string `json:"login"`
}

// Issue is the raw shape returned by GitHub's issues API. The issues
// endpoint also returns pull requests; PullRequest is non-nil for those.
type Issue struct {
	ID          int64           `json:"id"`
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	HTMLURL     string          `json:"html_url"`
	State       string          `json:"state"`
	Labels      []Label         `json:"labels"`
	Comments    int             `json:"comments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	PullRequest json.RawMessage `json:"pull_request"`
}

// Label is an issue label; only the name matters downstream.
type Label struct {
	Name string `json:"name"`
}

// LabelNames extracts the label names of an issue, skipping unnamed labels.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		if l.Name != "" {
			names = append(names, l.Name)
		}
	}
	return names
}

// IsPullRequest reports whether this issues-API entry is actually a PR.
func (i Issue) IsPullRequest() bool {
	return len(i.PullRequest) > 0
}
