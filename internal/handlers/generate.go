package handlers

import (
	"errors"

	"github.com/emmyxjay/contentFlow-New/internal/prompts"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/gofiber/fiber/v2"
)

// The two public generation endpoints answer with a flat {content} /
// {ideas} / {error} body instead of the status envelope.

type generateRequest struct {
	Type            string `json:"type"`
	Topic           string `json:"topic"`
	Keywords        string `json:"keywords"`
	Tone            string `json:"tone"`
	Length          string `json:"length"`
	Mode            string `json:"mode"`
	Platform        string `json:"platform"`
	ExistingContent string `json:"existingContent"`
}

type ideasRequest struct {
	Topic string `json:"topic"`
}

func generationError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrTopicRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Topic is required"})
	case errors.Is(err, services.ErrIdeasParse):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse ideas"})
	}
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

// POST /api/generate
func (h *Handler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	out, err := h.gen.GenerateContent(c.UserContext(), prompts.Request{
		Type:            req.Type,
		Mode:            req.Mode,
		Topic:           req.Topic,
		Keywords:        req.Keywords,
		Tone:            req.Tone,
		Length:          req.Length,
		Platform:        req.Platform,
		ExistingContent: req.ExistingContent,
	})
	if err != nil {
		return generationError(c, err, "Failed to generate content")
	}
	return c.JSON(fiber.Map{"content": out})
}

// POST /api/ideas
func (h *Handler) GenerateIdeas(c *fiber.Ctx) error {
	var req ideasRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	ideas, err := h.gen.GenerateIdeas(c.UserContext(), req.Topic)
	if err != nil {
		return generationError(c, err, "Failed to generate ideas")
	}
	return c.JSON(fiber.Map{"ideas": ideas})
}
