package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gitmatch/gitmatch/internal/config"
	"github.com/gitmatch/gitmatch/internal/database"
	"github.com/gitmatch/gitmatch/internal/discovery"
	"github.com/gitmatch/gitmatch/internal/github"
	"github.com/gitmatch/gitmatch/internal/handler"
	"github.com/gitmatch/gitmatch/internal/repository"
	"github.com/gitmatch/gitmatch/internal/service"
	"github.com/gitmatch/gitmatch/internal/vectordb"
)

// main is the single entry point for the REST API.
func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg := config.Load()
	log.Info("configuration loaded", "db", cfg.DBName, "port", cfg.Port)

	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	log.Info("connected to MongoDB")

	db := client.Database(cfg.DBName)
	repoStore := repository.NewRepoStore(db)
	issueStore := repository.NewIssueStore(db)
	syncRunStore := repository.NewSyncRunStore(db)
	repoIndex := vectordb.NewRepoIndex(db)
	issueIndex := vectordb.NewIssueIndex(db)

	embedder, err := service.NewVertexEmbedder(context.Background(), service.VertexConfig{
		ProjectID:       cfg.GCPProjectID,
		Location:        cfg.GCPLocation,
		CredentialsFile: cfg.GCPCredentialsFile,
	})
	if err != nil {
		log.Error("failed to initialize embedder", "error", err)
		os.Exit(1)
	}
	defer embedder.Close()

	discoverSvc := discovery.NewService(embedder, repoIndex, issueIndex,
		repoStore, issueStore, discovery.DefaultConfig(), log)

	gh := github.NewClient(cfg.GitHubToken, log)
	trendingSvc := service.NewTrendingService(gh, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	handler.RegisterRoutes(app, discoverSvc, repoStore, issueStore, trendingSvc, syncRunStore, client)

	log.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
