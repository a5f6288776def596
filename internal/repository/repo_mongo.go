// Package repository contains the Mongo-backed record stores. Access is
// strictly keyed: lookup by id, lookup by id set, and insert-or-update by id.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gitmatch/gitmatch/internal/models"
)

// RepoMongo persists repository records in the "repos" collection.
type RepoMongo struct {
	col *mongo.Collection
}

// NewRepoStore wires the repository collection.
func NewRepoStore(db *mongo.Database) *RepoMongo {
	return &RepoMongo{col: db.Collection("repos")}
}

// Upsert inserts or replaces the record with the same id, stamping the
// vector-sync bookkeeping fields.
func (r *RepoMongo) Upsert(ctx context.Context, repo models.Repository) error {
	now := time.Now().UTC()
	repo.EmbeddingID = repo.ID
	repo.EmbeddingSyncedAt = now
	repo.IndexedAt = now

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": repo.ID}, repo, options.Replace().SetUpsert(true))
	return err
}

// FindByID fetches one repository record. Returns mongo.ErrNoDocuments when
// the id is unknown.
func (r *RepoMongo) FindByID(ctx context.Context, id string) (models.Repository, error) {
	var repo models.Repository
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&repo)
	return repo, err
}

// FindByIDs fetches all records whose id is in ids. Unknown ids are simply
// absent from the result.
func (r *RepoMongo) FindByIDs(ctx context.Context, ids []string) ([]models.Repository, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var repos []models.Repository
	if err := cur.All(ctx, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Delete removes a repository record by id.
func (r *RepoMongo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
