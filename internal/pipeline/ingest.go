package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gitmatch/gitmatch/internal/github"
	"github.com/gitmatch/gitmatch/internal/models"
	"github.com/gitmatch/gitmatch/internal/vectordb"
)

// Source is the slice of the GitHub client the pipeline consumes.
type Source interface {
	SearchRepositories(ctx context.Context, params github.SearchParams) (github.SearchResult, error)
	FetchReadme(ctx context.Context, owner, name string) (string, error)
	FetchOpenIssues(ctx context.Context, owner, name string, perPage int) ([]github.Issue, error)
	FetchLanguages(ctx context.Context, owner, name string) (map[string]int, error)
}

// Embedder converts text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RepoStore persists repository records by id.
type RepoStore interface {
	Upsert(ctx context.Context, repo models.Repository) error
}

// IssueStore persists issue records by id.
type IssueStore interface {
	Upsert(ctx context.Context, issue models.Issue) error
}

// SyncRunStore audits pipeline runs.
type SyncRunStore interface {
	Create(ctx context.Context, runType models.SyncType) (string, error)
	Finish(ctx context.Context, id string, status models.SyncStatus, repos, issues int, errs []string) error
}

// RepoVectorIndex receives repository embeddings.
type RepoVectorIndex interface {
	Upsert(ctx context.Context, id string, vector []float32, meta vectordb.RepoMetadata) error
}

// IssueVectorIndex receives issue embeddings.
type IssueVectorIndex interface {
	Upsert(ctx context.Context, id string, vector []float32, meta vectordb.IssueMetadata) error
}

// Config holds the tunable knobs of an ingestion run.
type Config struct {
	Languages           []string
	MinStars            int
	MaxReposPerLanguage int
	MaxIssuesPerRepo    int
	ReposPerPage        int
}

// DefaultConfig returns the standard language matrix and caps.
func DefaultConfig() Config {
	return Config{
		Languages: []string{
			"typescript", "javascript", "python", "go", "rust", "java",
			"csharp", "cpp", "ruby", "php", "swift", "kotlin",
		},
		MinStars:            100,
		MaxReposPerLanguage: 25,
		MaxIssuesPerRepo:    20,
		ReposPerPage:        25,
	}
}

// Result summarizes one ingestion run.
type Result struct {
	TotalRepos  int      `json:"totalRepos"`
	TotalIssues int      `json:"totalIssues"`
	Errors      []string `json:"errors"`
}

// Ingestor drives the batch pipeline: source fetch → transform → embed →
// persist to the record store and the vector indexes, with per-item failure
// isolation and a sync-run audit record.
type Ingestor struct {
	src        Source
	embedder   Embedder
	repos      RepoStore
	issues     IssueStore
	runs       SyncRunStore
	repoIndex  RepoVectorIndex
	issueIndex IssueVectorIndex
	cfg        Config
	log        *slog.Logger
}

// NewIngestor wires the pipeline's collaborators. A nil logger falls back to
// slog.Default().
func NewIngestor(src Source, embedder Embedder, repos RepoStore, issues IssueStore,
	runs SyncRunStore, repoIndex RepoVectorIndex, issueIndex IssueVectorIndex,
	cfg Config, log *slog.Logger) *Ingestor {
	if log == nil {
		log = slog.Default()
	}
	return &Ingestor{
		src:        src,
		embedder:   embedder,
		repos:      repos,
		issues:     issues,
		runs:       runs,
		repoIndex:  repoIndex,
		issueIndex: issueIndex,
		cfg:        cfg,
		log:        log,
	}
}

// Run executes a full ingestion across the configured language matrix. Item
// and language failures are accumulated in the result; only a run-level fatal
// failure (such as context cancellation) is returned as an error, in which
// case the sync run is marked FAILED with the counts gathered so far. In dry
// run mode nothing is written anywhere, including the audit record.
func (ing *Ingestor) Run(ctx context.Context, dryRun bool) (Result, error) {
	result := Result{Errors: []string{}}
	ing.log.Info("starting ingestion pipeline", "dry_run", dryRun)

	var runID string
	if !dryRun {
		id, err := ing.runs.Create(ctx, models.SyncFull)
		if err != nil {
			return result, fmt.Errorf("creating sync run: %w", err)
		}
		runID = id
	}

	if err := ing.ingestLanguages(ctx, dryRun, &result); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("pipeline fatal error: %v", err))
		ing.log.Error("pipeline aborted", "error", err)
		if runID != "" {
			if finishErr := ing.runs.Finish(ctx, runID, models.SyncFailed,
				result.TotalRepos, result.TotalIssues, result.Errors); finishErr != nil {
				ing.log.Error("failed to mark sync run failed", "run_id", runID, "error", finishErr)
			}
		}
		return result, err
	}

	if runID != "" {
		if err := ing.runs.Finish(ctx, runID, models.SyncCompleted,
			result.TotalRepos, result.TotalIssues, result.Errors); err != nil {
			ing.log.Error("failed to complete sync run", "run_id", runID, "error", err)
		}
	}

	ing.log.Info("pipeline finished",
		"repos", result.TotalRepos, "issues", result.TotalIssues, "errors", len(result.Errors))
	return result, nil
}

func (ing *Ingestor) ingestLanguages(ctx context.Context, dryRun bool, result *Result) error {
	for _, language := range ing.cfg.Languages {
		if err := ctx.Err(); err != nil {
			return err
		}
		ing.log.Info("processing language", "language", language)

		processed := 0
		page := 1
		for processed < ing.cfg.MaxReposPerLanguage {
			perPage := min(ing.cfg.ReposPerPage, ing.cfg.MaxReposPerLanguage-processed)

			search, err := ing.src.SearchRepositories(ctx, github.SearchParams{
				Language: language,
				MinStars: ing.cfg.MinStars,
				Page:     page,
				PerPage:  perPage,
				Sort:     "stars",
				Order:    "desc",
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// A search failure aborts this language only.
				msg := fmt.Sprintf("failed to fetch repos for %s (page %d): %v", language, page, err)
				ing.log.Error("language fetch failed", "language", language, "page", page, "error", err)
				result.Errors = append(result.Errors, msg)
				break
			}
			if len(search.Items) == 0 {
				break
			}

			for _, raw := range search.Items {
				issueCount, err := ing.processRepository(ctx, raw, dryRun)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					msg := fmt.Sprintf("failed to process repo %s: %v", raw.FullName, err)
					ing.log.Error("repo processing failed", "repo", raw.FullName, "error", err)
					result.Errors = append(result.Errors, msg)
					continue
				}
				result.TotalRepos++
				result.TotalIssues += issueCount
				processed++
				if processed >= ing.cfg.MaxReposPerLanguage {
					break
				}
			}

			if !search.HasNextPage {
				break
			}
			page++
		}

		ing.log.Info("completed language", "language", language, "repos", processed)
	}
	return nil
}

// processRepository fetches a repository's supplementary data concurrently,
// transforms it, and writes the record and its vector, then its issues.
// Returns the number of issues processed.
func (ing *Ingestor) processRepository(ctx context.Context, raw github.Repository, dryRun bool) (int, error) {
	owner, name := raw.Owner.Login, raw.Name

	var (
		readme    string
		languages map[string]int
		rawIssues []github.Issue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		readme, err = ing.src.FetchReadme(gctx, owner, name)
		return err
	})
	g.Go(func() error {
		var err error
		languages, err = ing.src.FetchLanguages(gctx, owner, name)
		return err
	})
	g.Go(func() error {
		var err error
		rawIssues, err = ing.src.FetchOpenIssues(gctx, owner, name, ing.cfg.MaxIssuesPerRepo)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	repo := TransformRepository(raw, readme, languages, time.Now().UTC())

	if dryRun {
		ing.log.Info("dry run: would upsert repo", "repo", repo.FullName, "issues", len(rawIssues))
		return len(rawIssues), nil
	}

	vec, err := ing.embedder.Embed(ctx, BuildRepoEmbeddingText(repo))
	if err != nil {
		return 0, fmt.Errorf("embedding repo: %w", err)
	}
	if err := ing.repos.Upsert(ctx, repo); err != nil {
		return 0, fmt.Errorf("storing repo: %w", err)
	}

	lang := repo.PrimaryLanguage
	if lang == "" {
		lang = "unknown"
	}
	if err := ing.repoIndex.Upsert(ctx, repo.ID, vec, vectordb.RepoMetadata{
		PrimaryLanguage: lang,
		Size:            repo.Size,
		Stars:           repo.Stars,
		Topics:          repo.Topics,
	}); err != nil {
		return 0, fmt.Errorf("indexing repo vector: %w", err)
	}

	// An issue failure skips that issue only; it never fails the repository.
	processed := 0
	for _, rawIssue := range rawIssues {
		if err := ing.processIssue(ctx, rawIssue, repo.ID); err != nil {
			if ctx.Err() != nil {
				return processed, ctx.Err()
			}
			ing.log.Warn("failed to process issue",
				"repo", repo.FullName, "issue", rawIssue.Number, "error", err)
			continue
		}
		processed++
	}

	ing.log.Info("completed repo", "repo", repo.FullName, "issues", processed)
	return processed, nil
}

func (ing *Ingestor) processIssue(ctx context.Context, raw github.Issue, repoID string) error {
	issue := TransformIssue(raw, repoID)

	vec, err := ing.embedder.Embed(ctx, BuildIssueEmbeddingText(issue))
	if err != nil {
		return fmt.Errorf("embedding issue: %w", err)
	}
	if err := ing.issues.Upsert(ctx, issue); err != nil {
		return fmt.Errorf("storing issue: %w", err)
	}

	difficulty := string(issue.Difficulty)
	if difficulty == "" {
		difficulty = "unknown"
	}
	return ing.issueIndex.Upsert(ctx, issue.ID, vec, vectordb.IssueMetadata{
		RepoID:           repoID,
		Difficulty:       difficulty,
		IsGoodFirstIssue: issue.IsGoodFirstIssue,
		Labels:           issue.Labels,
	})
}
