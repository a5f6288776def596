package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitmatch/gitmatch/internal/models"
)

// IssueMongo persists issue records in the "issues" collection. Issues hold
// only a repo_id back-reference to their owning repository.
type IssueMongo struct {
	col *mongo.Collection
}

// NewIssueStore wires the issue collection.
func NewIssueStore(db *mongo.Database) *IssueMongo {
	return &IssueMongo{col: db.Collection("issues")}
}

// Upsert inserts or replaces the record with the same id, stamping the
// vector-sync bookkeeping fields.
func (s *IssueMongo) Upsert(ctx context.Context, issue models.Issue) error {
	now := time.Now().UTC()
	issue.EmbeddingID = issue.ID
	issue.EmbeddingSyncedAt = now
	issue.IndexedAt = now

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": issue.ID}, issue, options.Replace().SetUpsert(true))
	return err
}

// FindOpenByIDs fetches the OPEN issues among ids. Issues that have been
// closed since their vector was indexed are filtered out here, which is what
// lets discovery drop stale vector matches silently.
func (s *IssueMongo) FindOpenByIDs(ctx context.Context, ids []string) ([]models.Issue, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := s.col.Find(ctx, bson.M{
		"_id":   bson.M{"$in": ids},
		"state": models.IssueOpen,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var issues []models.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// ListOpenByRepo returns a repository's OPEN issues ordered by difficulty
// then creation time, for the repo detail page.
func (s *IssueMongo) ListOpenByRepo(ctx context.Context, repoID string) ([]models.Issue, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "difficulty", Value: 1},
		{Key: "created_at", Value: 1},
	})

	cur, err := s.col.Find(ctx, bson.M{"repo_id": repoID, "state": models.IssueOpen}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var issues []models.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}
