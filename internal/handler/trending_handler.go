package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// TopicProvider serves the current trending topics.
type TopicProvider interface {
	Topics(ctx context.Context) []string
}

// TrendingHandler wires HTTP → trending service.
type TrendingHandler struct {
	svc TopicProvider
}

// NewTrendingHandler returns a handler instance.
func NewTrendingHandler(svc TopicProvider) *TrendingHandler {
	return &TrendingHandler{svc: svc}
}

// Register mounts GET /trending on the given router group.
func (h *TrendingHandler) Register(r fiber.Router) {
	r.Get("/trending", h.trending)
}

func (h *TrendingHandler) trending(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"topics": h.svc.Topics(c.UserContext())})
}
