package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports process and datastore liveness.
type HealthHandler struct {
	db *mongo.Client
}

// NewHealthHandler returns a handler instance.
func NewHealthHandler(db *mongo.Client) *HealthHandler {
	return &HealthHandler{db: db}
}

// Register mounts GET /health on the given router group.
func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	dbStatus := "not_configured"
	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.Ping(c.UserContext(), nil); err != nil {
			dbStatus = "error"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"db":     dbStatus,
	})
}
