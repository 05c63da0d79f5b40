package handlers

import (
	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type ideaRequest struct {
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description"`
	Keywords     []string            `json:"keywords"`
	SearchVolume int                 `json:"searchVolume" validate:"min=0"`
	Competition  models.Competition  `json:"competition" validate:"omitempty,oneof=low medium high"`
	SearchIntent models.SearchIntent `json:"searchIntent" validate:"omitempty,oneof=informational commercial transactional navigational"`
	Score        float64             `json:"score"`
	Source       models.IdeaSource   `json:"source" validate:"omitempty,oneof=trending competitor keyword question"`
}

func (h *Handler) ListIdeas(c *fiber.Ctx) error {
	ideas, err := h.ideas.List(c.UserContext(), middleware.WorkspaceID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, ideas)
}

func (h *Handler) CreateIdea(c *fiber.Ctx) error {
	var req ideaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	idea, err := h.ideas.Add(c.UserContext(), middleware.WorkspaceID(c), models.IdeaDraft{
		Title:        req.Title,
		Description:  req.Description,
		Keywords:     req.Keywords,
		SearchVolume: req.SearchVolume,
		Competition:  req.Competition,
		SearchIntent: req.SearchIntent,
		Score:        req.Score,
		Source:       req.Source,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, idea)
}

// POST /api/v1/ideas/generate
func (h *Handler) GenerateAndSaveIdeas(c *fiber.Ctx) error {
	var req ideasRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	ideas, err := h.ideas.GenerateAndSave(c.UserContext(), middleware.WorkspaceID(c), req.Topic)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, ideas)
}

func (h *Handler) DeleteIdea(c *fiber.Ctx) error {
	if err := h.ideas.Remove(c.UserContext(), middleware.WorkspaceID(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
