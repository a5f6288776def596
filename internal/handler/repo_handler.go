package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gitmatch/gitmatch/internal/models"
)

// RepoFinder looks up one repository record.
type RepoFinder interface {
	FindByID(ctx context.Context, id string) (models.Repository, error)
}

// IssueLister lists a repository's open issues for the detail view.
type IssueLister interface {
	ListOpenByRepo(ctx context.Context, repoID string) ([]models.Issue, error)
}

// RepoDetail combines a repository record with its open issues.
type RepoDetail struct {
	Repo   models.Repository `json:"repo"`
	Issues []models.Issue    `json:"issues"`
}

// RepoHandler wires HTTP → record stores for the repo detail endpoint.
type RepoHandler struct {
	repos  RepoFinder
	issues IssueLister
}

// NewRepoHandler creates a new RepoHandler.
func NewRepoHandler(repos RepoFinder, issues IssueLister) *RepoHandler {
	return &RepoHandler{repos: repos, issues: issues}
}

// Register mounts GET /repos/:id on the supplied router group.
func (h *RepoHandler) Register(r fiber.Router) {
	r.Get("/repos/:id", h.getRepo)
}

// getRepo handles GET /repos/:id
func (h *RepoHandler) getRepo(c *fiber.Ctx) error {
	repoID := c.Params("id")
	if repoID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "repo id is required")
	}

	repo, err := h.repos.FindByID(c.UserContext(), repoID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fiber.NewError(fiber.StatusNotFound, "repository not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	issues, err := h.issues.ListOpenByRepo(c.UserContext(), repoID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	return c.JSON(RepoDetail{Repo: repo, Issues: issues})
}
