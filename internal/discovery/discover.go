package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/gitmatch/gitmatch/internal/models"
	"github.com/gitmatch/gitmatch/internal/vectordb"
)

// Embedder converts the query text into the single embedding used by both
// vector searches of a request.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RepoSearcher queries the repository vector index.
type RepoSearcher interface {
	Query(ctx context.Context, vector []float32, topK int, filter vectordb.RepoFilter) ([]vectordb.Match, error)
}

// IssueSearcher queries the issue vector index.
type IssueSearcher interface {
	Query(ctx context.Context, vector []float32, topK int, filter vectordb.IssueFilter) ([]vectordb.Match, error)
}

// RepoStore hydrates repository records by id set.
type RepoStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Repository, error)
}

// IssueStore hydrates OPEN issue records by id set; closed issues whose
// vectors are still indexed drop out here.
type IssueStore interface {
	FindOpenByIDs(ctx context.Context, ids []string) ([]models.Issue, error)
}

// Config holds the ranking knobs. The defaults match production behavior;
// they are tunables, not physical constants.
type Config struct {
	TopRepos         int     // repo vector search width
	TopIssues        int     // issue vector search width
	MaxIssuesPerRepo int     // issues kept per repository in the result
	IssueBonus       float64 // score bonus per kept matched issue
}

// DefaultConfig returns the standard search widths and ranking bonus.
func DefaultConfig() Config {
	return Config{
		TopRepos:         20,
		TopIssues:        50,
		MaxIssuesPerRepo: 5,
		IssueBonus:       0.02,
	}
}

// Service is the stateless discovery orchestrator. Concurrent calls share
// nothing but the read-only stores and indexes.
type Service struct {
	embedder   Embedder
	repoIndex  RepoSearcher
	issueIndex IssueSearcher
	repos      RepoStore
	issues     IssueStore
	cfg        Config
	log        *slog.Logger
}

// NewService wires the discovery collaborators. A nil logger falls back to
// slog.Default().
func NewService(embedder Embedder, repoIndex RepoSearcher, issueIndex IssueSearcher,
	repos RepoStore, issues IssueStore, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		embedder:   embedder,
		repoIndex:  repoIndex,
		issueIndex: issueIndex,
		repos:      repos,
		issues:     issues,
		cfg:        cfg,
		log:        log,
	}
}

// Discover runs the full retrieval-and-ranking flow for one validated query.
// Errors from the embedder, the indexes or the stores are not retried here;
// they surface to the caller.
func (s *Service) Discover(ctx context.Context, query models.DiscoveryQuery) (models.DiscoveryResult, error) {
	result := models.DiscoveryResult{Repos: []models.RepoMatch{}, Query: query}

	// One embedding call per request; both vector searches reuse it.
	vector, err := s.embedder.Embed(ctx, BuildQueryText(query))
	if err != nil {
		return result, fmt.Errorf("embedding query: %w", err)
	}

	repoMatches, err := s.repoIndex.Query(ctx, vector, s.cfg.TopRepos, vectordb.RepoFilter{
		Languages: query.Languages,
		Sizes:     query.RepoSizes,
	})
	if err != nil {
		return result, fmt.Errorf("searching repos: %w", err)
	}
	if len(repoMatches) == 0 {
		return result, nil
	}

	repoIDs := make([]string, len(repoMatches))
	repoScores := make(map[string]float64, len(repoMatches))
	for i, m := range repoMatches {
		repoIDs[i] = m.ID
		repoScores[m.ID] = m.Score
	}

	issueMatches, err := s.issueIndex.Query(ctx, vector, s.cfg.TopIssues,
		issueFilterFor(repoIDs, query.ExperienceLevel))
	if err != nil {
		return result, fmt.Errorf("searching issues: %w", err)
	}

	issueScores := make(map[string]float64, len(issueMatches))
	issueIDs := make([]string, len(issueMatches))
	for i, m := range issueMatches {
		issueIDs[i] = m.ID
		issueScores[m.ID] = m.Score
	}

	repoRows, err := s.repos.FindByIDs(ctx, repoIDs)
	if err != nil {
		return result, fmt.Errorf("loading repos: %w", err)
	}
	var issueRows []models.Issue
	if len(issueIDs) > 0 {
		issueRows, err = s.issues.FindOpenByIDs(ctx, issueIDs)
		if err != nil {
			return result, fmt.Errorf("loading issues: %w", err)
		}
	}

	// Group issues by owning repo, best-scoring first, capped per repo.
	issuesByRepo := make(map[string][]models.IssueMatch)
	for _, issue := range issueRows {
		issuesByRepo[issue.RepoID] = append(issuesByRepo[issue.RepoID], models.IssueMatch{
			ID:         issue.ID,
			Number:     issue.Number,
			Title:      issue.Title,
			URL:        issue.URL,
			Labels:     issue.Labels,
			Difficulty: issue.Difficulty,
			Score:      issueScores[issue.ID],
		})
	}
	for repoID, matches := range issuesByRepo {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
		if len(matches) > s.cfg.MaxIssuesPerRepo {
			matches = matches[:s.cfg.MaxIssuesPerRepo]
		}
		issuesByRepo[repoID] = matches
	}

	// A repo with zero surviving issues still ranks on semantic score alone.
	repos := make([]models.RepoMatch, 0, len(repoRows))
	for _, repo := range repoRows {
		matched := issuesByRepo[repo.ID]
		if matched == nil {
			matched = []models.IssueMatch{}
		}
		repos = append(repos, models.RepoMatch{
			ID:              repo.ID,
			FullName:        repo.FullName,
			Description:     repo.Description,
			URL:             repo.URL,
			Stars:           repo.Stars,
			PrimaryLanguage: repo.PrimaryLanguage,
			Topics:          repo.Topics,
			Size:            repo.Size,
			Score:           repoScores[repo.ID] + float64(len(matched))*s.cfg.IssueBonus,
			MatchedIssues:   matched,
		})
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Score > repos[j].Score })

	result.Repos = repos
	result.TotalReposSearched = len(repoMatches)
	return result, nil
}

// issueFilterFor scopes the issue search to the matched repositories and
// applies the experience-level constraint: beginners only see good first
// issues, intermediates see beginner and intermediate difficulties, experts
// see everything.
func issueFilterFor(repoIDs []string, level models.ExperienceLevel) vectordb.IssueFilter {
	filter := vectordb.IssueFilter{RepoIDs: repoIDs}

	switch level {
	case models.ExperienceBeginner:
		yes := true
		filter.GoodFirstIssue = &yes
	case models.ExperienceIntermediate:
		filter.Difficulties = []models.Difficulty{
			models.DifficultyBeginner,
			models.DifficultyIntermediate,
		}
	case models.ExperienceExpert:
		// no difficulty filter
	}
	return filter
}
