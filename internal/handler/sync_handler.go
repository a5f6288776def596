package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gitmatch/gitmatch/internal/models"
)

// SyncRunLister lists recent ingestion audit records.
type SyncRunLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.SyncRun, error)
}

// SyncHandler exposes the ingestion audit trail.
type SyncHandler struct {
	runs SyncRunLister
}

// NewSyncHandler returns a handler instance.
func NewSyncHandler(runs SyncRunLister) *SyncHandler {
	return &SyncHandler{runs: runs}
}

// Register mounts GET /sync-runs on the given router group.
func (h *SyncHandler) Register(r fiber.Router) {
	r.Get("/sync-runs", h.list)
}

func (h *SyncHandler) list(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 100")
	}

	runs, err := h.runs.ListRecent(c.UserContext(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if runs == nil {
		runs = []models.SyncRun{}
	}
	return c.JSON(runs)
}
