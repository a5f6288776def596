package service

import (
	"context"
	"unicode/utf8"
)

// Embedder is the black-box text→vector capability used by both the
// ingestion pipeline and the discovery service. Implementations must accept
// arbitrarily long text; input is truncated to MaxEmbedChars before the
// underlying model call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// MaxEmbedChars caps the text length sent to the embedding model. Longer
// input is truncated, never rejected.
const MaxEmbedChars = 8000

// TruncateForEmbedding shortens text to at most MaxEmbedChars bytes without
// splitting a UTF-8 sequence.
func TruncateForEmbedding(text string) string {
	if len(text) <= MaxEmbedChars {
		return text
	}
	cut := text[:MaxEmbedChars]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
