package models

import "time"

// SyncStatus tracks the lifecycle of one ingestion run.
type SyncStatus string

const (
	SyncRunning   SyncStatus = "RUNNING"
	SyncCompleted SyncStatus = "COMPLETED"
	SyncFailed    SyncStatus = "FAILED"
)

// SyncType distinguishes kinds of ingestion runs. Only full syncs exist today.
type SyncType string

const SyncFull SyncType = "FULL"

// SyncRun is the audit record for one execution of the ingestion pipeline.
// It is created when the run starts and updated exactly once, at completion
// or failure.
type SyncRun struct {
	ID              string     `bson:"_id" json:"id"`
	Type            SyncType   `bson:"type" json:"type"`
	Status          SyncStatus `bson:"status" json:"status"`
	StartedAt       time.Time  `bson:"started_at" json:"startedAt"`
	CompletedAt     *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	ReposProcessed  int        `bson:"repos_processed" json:"reposProcessed"`
	IssuesProcessed int        `bson:"issues_processed" json:"issuesProcessed"`
	Errors          []string   `bson:"errors" json:"errors"`
}
