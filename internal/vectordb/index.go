// Package vectordb wraps the external vector store behind narrow gateway
// types: one index of repository vectors and one of issue vectors, each
// supporting idempotent upsert, delete and metadata-filtered nearest-neighbor
// queries. The concrete implementation targets MongoDB Atlas Vector Search.
package vectordb

import "github.com/gitmatch/gitmatch/internal/models"

// Match is one nearest-neighbor hit, ordered by descending similarity.
// Score is an opaque normalized similarity; higher means more similar.
type Match struct {
	ID    string
	Score float64
}

// RepoMetadata is attached to repository vectors at upsert time and drives
// later filtering.
type RepoMetadata struct {
	PrimaryLanguage string   // "unknown" when the repo has no primary language
	Size            models.RepoSize
	Stars           int
	Topics          []string
}

// IssueMetadata is attached to issue vectors at upsert time.
type IssueMetadata struct {
	RepoID           string
	Difficulty       string // "unknown" when no label matched
	IsGoodFirstIssue bool
	Labels           []string
}

// RepoFilter constrains a repository query. Empty slices mean no constraint
// on that field; non-empty slices are allow-lists.
type RepoFilter struct {
	Languages []string
	Sizes     []models.RepoSize
}

// IssueFilter constrains an issue query. RepoIDs scopes the search to the
// given owning repositories; GoodFirstIssue, when non-nil, requires an exact
// flag value.
type IssueFilter struct {
	RepoIDs        []string
	Difficulties   []models.Difficulty
	GoodFirstIssue *bool
}
