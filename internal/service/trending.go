package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// fallbackTopics is served when GitHub cannot be reached; trending hints are
// best-effort and must never fail a request.
var fallbackTopics = []string{
	"machine-learning", "typescript", "react", "rust", "web-assembly",
	"kubernetes", "graphql", "next-js", "tailwindcss", "open-source",
	"cli", "developer-tools", "ai", "llm", "blockchain",
}

// TrendingSource fetches trending topics from the code-hosting API.
type TrendingSource interface {
	FetchTrendingTopics(ctx context.Context) ([]string, error)
}

// TrendingService caches trending topics in-process for 15 minutes.
type TrendingService struct {
	src TrendingSource
	log *slog.Logger

	mu        sync.Mutex
	topics    []string
	fetchedAt time.Time
	ttl       time.Duration
}

// NewTrendingService wires the source. A nil logger falls back to
// slog.Default().
func NewTrendingService(src TrendingSource, log *slog.Logger) *TrendingService {
	if log == nil {
		log = slog.Default()
	}
	return &TrendingService{src: src, log: log, ttl: 15 * time.Minute}
}

// Topics returns the cached trending topics, refreshing them when the cache
// has expired. A failed or empty refresh serves the fallback list.
func (s *TrendingService) Topics(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topics != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.topics
	}

	topics, err := s.src.FetchTrendingTopics(ctx)
	if err != nil || len(topics) == 0 {
		if err != nil {
			s.log.Warn("failed to fetch trending topics, serving fallback", "error", err)
		}
		topics = fallbackTopics
	}

	s.topics = topics
	s.fetchedAt = time.Now()
	return topics
}
