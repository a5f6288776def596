package models

import "time"

// IssueState mirrors GitHub's open/closed issue state.
type IssueState string

const (
	IssueOpen   IssueState = "OPEN"
	IssueClosed IssueState = "CLOSED"
)

// Difficulty is a coarse contribution-difficulty bucket inferred from labels.
// The empty string means no recognisable label was present.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Issue is the authoritative record for an ingested GitHub issue. Issues hold
// a back-reference to their repository by id only.
type Issue struct {
	ID           string     `bson:"_id" json:"id"` // GitHub's numeric id, stringified
	RepoID       string     `bson:"repo_id" json:"repoId"`
	Number       int        `bson:"number" json:"number"`
	Title        string     `bson:"title" json:"title"`
	Body         string     `bson:"body" json:"body,omitempty"`
	URL          string     `bson:"url" json:"url"`
	State        IssueState `bson:"state" json:"state"`
	Labels       []string   `bson:"labels" json:"labels"`
	CommentCount int        `bson:"comment_count" json:"commentCount"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	Difficulty       Difficulty `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	IsGoodFirstIssue bool       `bson:"is_good_first_issue" json:"isGoodFirstIssue"`

	// Vector-sync bookkeeping.
	EmbeddingID       string    `bson:"embedding_id" json:"-"`
	EmbeddingSyncedAt time.Time `bson:"embedding_synced_at" json:"-"`
	IndexedAt         time.Time `bson:"indexed_at" json:"-"`
}
