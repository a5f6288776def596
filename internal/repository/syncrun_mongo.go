package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitmatch/gitmatch/internal/models"
)

// SyncRunMongo persists ingestion audit records in the "sync_runs" collection.
type SyncRunMongo struct {
	col *mongo.Collection
}

// NewSyncRunStore wires the sync-run collection.
func NewSyncRunStore(db *mongo.Database) *SyncRunMongo {
	return &SyncRunMongo{col: db.Collection("sync_runs")}
}

// Create inserts a new RUNNING record and returns its id.
func (s *SyncRunMongo) Create(ctx context.Context, runType models.SyncType) (string, error) {
	run := models.SyncRun{
		ID:        primitive.NewObjectID().Hex(),
		Type:      runType,
		Status:    models.SyncRunning,
		StartedAt: time.Now().UTC(),
		Errors:    []string{},
	}
	if _, err := s.col.InsertOne(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// Finish moves a run to its terminal status with final counts and the
// accumulated error list.
func (s *SyncRunMongo) Finish(ctx context.Context, id string, status models.SyncStatus, repos, issues int, errs []string) error {
	if errs == nil {
		errs = []string{}
	}
	now := time.Now().UTC()

	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":           status,
		"completed_at":     now,
		"repos_processed":  repos,
		"issues_processed": issues,
		"errors":           errs,
	}})
	return err
}

// ListRecent returns the newest runs first, up to limit.
func (s *SyncRunMongo) ListRecent(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var runs []models.SyncRun
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
