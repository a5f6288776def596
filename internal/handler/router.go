package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes mounts every API endpoint under /api/v1.
func RegisterRoutes(app *fiber.App,
	discoverSvc Discoverer,
	repos RepoFinder,
	issues IssueLister,
	trendingSvc TopicProvider,
	syncRuns SyncRunLister,
	db *mongo.Client,
) {
	v1 := app.Group("/api/v1")
	NewDiscoverHandler(discoverSvc).Register(v1)
	NewRepoHandler(repos, issues).Register(v1)
	NewTrendingHandler(trendingSvc).Register(v1)
	NewSyncHandler(syncRuns).Register(v1)
	NewHealthHandler(db).Register(v1)
}
