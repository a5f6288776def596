package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gitmatch/gitmatch/internal/discovery"
	"github.com/gitmatch/gitmatch/internal/models"
)

// Discoverer runs one discovery request.
type Discoverer interface {
	Discover(ctx context.Context, query models.DiscoveryQuery) (models.DiscoveryResult, error)
}

// DiscoverHandler wires HTTP → discovery service.
type DiscoverHandler struct {
	svc Discoverer
}

// NewDiscoverHandler returns a handler instance.
func NewDiscoverHandler(svc Discoverer) *DiscoverHandler {
	return &DiscoverHandler{svc: svc}
}

// Register mounts POST /discover on the given router group.
func (h *DiscoverHandler) Register(r fiber.Router) {
	r.Post("/discover", h.discover)
}

var validSizes = map[models.RepoSize]bool{
	models.SizeSmall:  true,
	models.SizeMedium: true,
	models.SizeLarge:  true,
	models.SizeHuge:   true,
}

var validLevels = map[models.ExperienceLevel]bool{
	models.ExperienceBeginner:     true,
	models.ExperienceIntermediate: true,
	models.ExperienceExpert:       true,
}

// discover handles POST /discover. Malformed queries are rejected here,
// before the orchestrator runs.
func (h *DiscoverHandler) discover(c *fiber.Ctx) error {
	var query models.DiscoveryQuery
	if err := c.BodyParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON in request body")
	}

	if msg := validateQuery(query); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	result, err := h.svc.Discover(c.UserContext(), query)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "discovery failed")
	}
	return c.JSON(result)
}

// validateQuery returns an empty string for a well-formed query, otherwise a
// human-readable reason.
func validateQuery(q models.DiscoveryQuery) string {
	if len(q.Languages) == 0 {
		return "at least one language is required"
	}
	if !validLevels[q.ExperienceLevel] {
		return "experienceLevel must be beginner, intermediate or expert"
	}
	if len(q.RepoSizes) == 0 {
		return "at least one repo size is required"
	}
	for _, size := range q.RepoSizes {
		if !validSizes[size] {
			return "unknown repo size: " + string(size)
		}
	}
	for _, interest := range q.Interests {
		if !discovery.KnownInterest(interest) {
			return "unknown interest: " + interest
		}
	}
	return ""
}
