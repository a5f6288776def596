package service

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// VertexEmbedder generates embeddings with Vertex AI's text-embedding-005
// model. Construct once per process and inject where an Embedder is needed.
type VertexEmbedder struct {
	client    *aiplatform.PredictionClient
	modelName string
}

// VertexConfig locates the embedding model and its credentials.
type VertexConfig struct {
	ProjectID       string
	Location        string
	CredentialsFile string // optional; ADC is used when empty
	Model           string // optional; defaults to text-embedding-005
}

// NewVertexEmbedder creates the prediction client and resolves the full
// publisher model name.
func NewVertexEmbedder(ctx context.Context, cfg VertexConfig) (*VertexEmbedder, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := aiplatform.NewPredictionClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	location := cfg.Location
	if location == "" {
		location = "us-central1"
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-005"
	}

	return &VertexEmbedder{
		client: client,
		modelName: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			cfg.ProjectID, location, model),
	}, nil
}

// Embed generates an embedding vector for the input text, truncated to
// MaxEmbedChars. task_type RETRIEVAL_QUERY keeps query and document vectors
// in the same space.
func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	instance, err := structpb.NewStruct(map[string]interface{}{
		"content":   TruncateForEmbedding(text),
		"task_type": "RETRIEVAL_QUERY",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	req := &aiplatformpb.PredictRequest{
		Endpoint:  v.modelName,
		Instances: []*structpb.Value{structpb.NewStructValue(instance)},
	}

	resp, err := v.client.Predict(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("no predictions returned")
	}

	prediction := resp.Predictions[0].GetStructValue()
	embeddings := prediction.GetFields()["embeddings"].GetStructValue()
	values := embeddings.GetFields()["values"].GetListValue().GetValues()

	result := make([]float32, len(values))
	for i, val := range values {
		result[i] = float32(val.GetNumberValue())
	}
	return result, nil
}

// Close releases the underlying prediction client.
func (v *VertexEmbedder) Close() error {
	return v.client.Close()
}
