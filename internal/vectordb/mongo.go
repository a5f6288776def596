package vectordb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection and Atlas vector-search index names. The vector field of both
// collections must be covered by a vector index with the filter fields mapped
// as "filter" type.
const (
	repoVectorCollection  = "repo_vectors"
	issueVectorCollection = "issue_vectors"
	repoVectorIndex       = "repo_vector_index"
	issueVectorIndex      = "issue_vector_index"
)

// RepoIndex stores repository embeddings in Atlas Vector Search.
type RepoIndex struct {
	col *mongo.Collection
}

// IssueIndex stores issue embeddings in Atlas Vector Search.
type IssueIndex struct {
	col *mongo.Collection
}

// NewRepoIndex wires the repository vector collection.
func NewRepoIndex(db *mongo.Database) *RepoIndex {
	return &RepoIndex{col: db.Collection(repoVectorCollection)}
}

// NewIssueIndex wires the issue vector collection.
func NewIssueIndex(db *mongo.Database) *IssueIndex {
	return &IssueIndex{col: db.Collection(issueVectorCollection)}
}

// Upsert replaces any existing vector with the same id.
func (x *RepoIndex) Upsert(ctx context.Context, id string, vector []float32, meta RepoMetadata) error {
	doc := bson.M{
		"_id":              id,
		"vector":           vector,
		"primary_language": meta.PrimaryLanguage,
		"size":             meta.Size,
		"stars":            meta.Stars,
		"topics":           meta.Topics,
	}
	_, err := x.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a single repository vector. Deleting a missing id is a no-op.
func (x *RepoIndex) Delete(ctx context.Context, id string) error {
	_, err := x.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Query returns the topK most similar repository vectors, optionally
// restricted to the filter's language and size allow-lists.
func (x *RepoIndex) Query(ctx context.Context, vector []float32, topK int, filter RepoFilter) ([]Match, error) {
	clauses := bson.M{}
	if len(filter.Languages) > 0 {
		clauses["primary_language"] = bson.M{"$in": filter.Languages}
	}
	if len(filter.Sizes) > 0 {
		clauses["size"] = bson.M{"$in": filter.Sizes}
	}
	return vectorSearch(ctx, x.col, repoVectorIndex, vector, topK, clauses)
}

// Upsert replaces any existing vector with the same id.
func (x *IssueIndex) Upsert(ctx context.Context, id string, vector []float32, meta IssueMetadata) error {
	doc := bson.M{
		"_id":                 id,
		"vector":              vector,
		"repo_id":             meta.RepoID,
		"difficulty":          meta.Difficulty,
		"is_good_first_issue": meta.IsGoodFirstIssue,
		"labels":              meta.Labels,
	}
	_, err := x.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// DeleteMany removes a batch of issue vectors by id.
func (x *IssueIndex) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := x.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// Query returns the topK most similar issue vectors within the filter's
// repository scope and difficulty/good-first-issue constraints.
func (x *IssueIndex) Query(ctx context.Context, vector []float32, topK int, filter IssueFilter) ([]Match, error) {
	clauses := bson.M{}
	if len(filter.RepoIDs) > 0 {
		clauses["repo_id"] = bson.M{"$in": filter.RepoIDs}
	}
	if len(filter.Difficulties) > 0 {
		clauses["difficulty"] = bson.M{"$in": filter.Difficulties}
	}
	if filter.GoodFirstIssue != nil {
		clauses["is_good_first_issue"] = *filter.GoodFirstIssue
	}
	return vectorSearch(ctx, x.col, issueVectorIndex, vector, topK, clauses)
}

// vectorSearch runs the shared $vectorSearch aggregation and projects the
// similarity score out of the search metadata.
func vectorSearch(ctx context.Context, col *mongo.Collection, index string, vector []float32, topK int, filter bson.M) ([]Match, error) {
	search := bson.D{
		{Key: "index", Value: index},
		{Key: "path", Value: "vector"},
		{Key: "queryVector", Value: vector},
		{Key: "numCandidates", Value: topK * 10},
		{Key: "limit", Value: topK},
	}
	if len(filter) > 0 {
		search = append(search, bson.E{Key: "filter", Value: filter})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: search}},
		{{Key: "$project", Value: bson.D{
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID    string  `bson:"_id"`
		Score float64 `bson:"score"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	matches := make([]Match, len(rows))
	for i, row := range rows {
		matches[i] = Match{ID: row.ID, Score: row.Score}
	}
	return matches, nil
}
