package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTrendingSource struct {
	topics []string
	err    error
	calls  int
}

func (s *stubTrendingSource) FetchTrendingTopics(_ context.Context) ([]string, error) {
	s.calls++
	return s.topics, s.err
}

func newTrendingService(src TrendingSource) *TrendingService {
	return NewTrendingService(src, slog.New(slog.DiscardHandler))
}

func TestTrendingTopics_CachesWithinTTL(t *testing.T) {
	src := &stubTrendingSource{topics: []string{"rust", "wasm"}}
	svc := newTrendingService(src)

	first := svc.Topics(context.Background())
	second := svc.Topics(context.Background())

	assert.Equal(t, []string{"rust", "wasm"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
}

func TestTrendingTopics_FallbackOnError(t *testing.T) {
	src := &stubTrendingSource{err: errors.New("github unreachable")}
	svc := newTrendingService(src)

	topics := svc.Topics(context.Background())

	assert.Equal(t, fallbackTopics, topics)
	assert.Contains(t, topics, "machine-learning")
}

func TestTrendingTopics_FallbackOnEmptyResult(t *testing.T) {
	src := &stubTrendingSource{topics: []string{}}
	svc := newTrendingService(src)

	assert.Equal(t, fallbackTopics, svc.Topics(context.Background()))
}

func TestTrendingTopics_RefreshAfterExpiry(t *testing.T) {
	src := &stubTrendingSource{topics: []string{"graphql"}}
	svc := newTrendingService(src)
	svc.ttl = 0 // every call is a refresh

	svc.Topics(context.Background())
	svc.Topics(context.Background())

	assert.Equal(t, 2, src.calls)
}
