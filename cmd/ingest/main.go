package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitmatch/gitmatch/internal/config"
	"github.com/gitmatch/gitmatch/internal/database"
	"github.com/gitmatch/gitmatch/internal/github"
	"github.com/gitmatch/gitmatch/internal/pipeline"
	"github.com/gitmatch/gitmatch/internal/repository"
	"github.com/gitmatch/gitmatch/internal/service"
	"github.com/gitmatch/gitmatch/internal/vectordb"
)

func main() {
	var dryRun bool

	root := &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion sync across the configured language matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), dryRun)
		},
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&dryRun, "dry-run", false, "fetch and transform without writing anything")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ingest: fatal error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dryRun bool) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg := config.Load()

	client, mctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	defer cancel()
	defer client.Disconnect(mctx)

	db := client.Database(cfg.DBName)

	embedder, err := service.NewVertexEmbedder(ctx, service.VertexConfig{
		ProjectID:       cfg.GCPProjectID,
		Location:        cfg.GCPLocation,
		CredentialsFile: cfg.GCPCredentialsFile,
	})
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}
	defer embedder.Close()

	ingestor := pipeline.NewIngestor(
		github.NewClient(cfg.GitHubToken, log),
		embedder,
		repository.NewRepoStore(db),
		repository.NewIssueStore(db),
		repository.NewSyncRunStore(db),
		vectordb.NewRepoIndex(db),
		vectordb.NewIssueIndex(db),
		pipeline.DefaultConfig(),
		log,
	)

	mode := "LIVE"
	if dryRun {
		mode = "DRY RUN"
	}
	log.Info("starting ingestion", "mode", mode)
	start := time.Now()

	result, err := ingestor.Run(ctx, dryRun)

	log.Info("ingestion finished",
		"duration", time.Since(start).Round(time.Second),
		"repos", result.TotalRepos,
		"issues", result.TotalIssues,
		"errors", len(result.Errors))

	for i, msg := range result.Errors {
		if i == 20 {
			log.Warn(fmt.Sprintf("... and %d more errors", len(result.Errors)-20))
			break
		}
		log.Warn("run error", "error", msg)
	}

	return err
}
