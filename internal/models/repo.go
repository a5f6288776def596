package models

import "time"

// RepoSize buckets a repository by star count.
type RepoSize string

const (
	SizeSmall  RepoSize = "SMALL"  // < 1k stars
	SizeMedium RepoSize = "MEDIUM" // 1k – 10k
	SizeLarge  RepoSize = "LARGE"  // 10k – 50k
	SizeHuge   RepoSize = "HUGE"   // 50k+
)

// Repository is the authoritative record for an ingested GitHub repository.
// It is written only by the ingestion pipeline; discovery reads it.
type Repository struct {
	ID              string   `bson:"_id" json:"id"` // GitHub's numeric id, stringified
	Name            string   `bson:"name" json:"name"`
	FullName        string   `bson:"full_name" json:"fullName"` // "owner/name"
	Description     string   `bson:"description" json:"description"`
	URL             string   `bson:"url" json:"url"`
	Stars           int      `bson:"stars" json:"stars"`
	Forks           int      `bson:"forks" json:"forks"`
	OpenIssuesCount int      `bson:"open_issues_count" json:"openIssuesCount"`
	PrimaryLanguage string   `bson:"primary_language" json:"primaryLanguage"`
	Languages       []string `bson:"languages" json:"languages"`
	Topics          []string `bson:"topics" json:"topics"`
	License         string   `bson:"license" json:"license"` // SPDX id, empty when unlicensed

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
	PushedAt  time.Time `bson:"pushed_at" json:"pushedAt"`

	Size        RepoSize `bson:"size" json:"size"`
	HealthScore int      `bson:"health_score" json:"healthScore"` // 0–100
	Readme      string   `bson:"readme" json:"readme,omitempty"`

	// Vector-sync bookkeeping.
	EmbeddingID       string    `bson:"embedding_id" json:"-"`
	EmbeddingSyncedAt time.Time `bson:"embedding_synced_at" json:"-"`
	IndexedAt         time.Time `bson:"indexed_at" json:"-"`
}
