package handlers

import (
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type contentRequest struct {
	Title            string               `json:"title" validate:"required,max=300"`
	Body             string               `json:"body"`
	Type             models.ContentType   `json:"type" validate:"omitempty,oneof=blog social email caption"`
	Status           models.ContentStatus `json:"status" validate:"omitempty,oneof=draft scheduled"`
	Tone             string               `json:"tone"`
	SEOScore         *int                 `json:"seoScore" validate:"omitempty,min=0,max=100"`
	ReadabilityScore *int                 `json:"readabilityScore" validate:"omitempty,min=0,max=100"`
	Keywords         []string             `json:"keywords"`
	Platforms        []models.Platform    `json:"platforms"`
	ScheduledAt      *time.Time           `json:"scheduledAt"`
	IdeaID           string               `json:"ideaId"`
	MediaAssets      []models.MediaAsset  `json:"mediaAssets"`
}

type contentPatchRequest struct {
	Title            *string               `json:"title" validate:"omitempty,max=300"`
	Body             *string               `json:"body"`
	Type             *models.ContentType   `json:"type"`
	Status           *models.ContentStatus `json:"status"`
	Tone             *string               `json:"tone"`
	SEOScore         *int                  `json:"seoScore" validate:"omitempty,min=0,max=100"`
	ReadabilityScore *int                  `json:"readabilityScore" validate:"omitempty,min=0,max=100"`
	Keywords         *[]string             `json:"keywords"`
	Platforms        *[]models.Platform    `json:"platforms"`
	ScheduledAt      *time.Time            `json:"scheduledAt"`
	MediaAssets      *[]models.MediaAsset  `json:"mediaAssets"`
}

type statusRequest struct {
	Status      models.ContentStatus `json:"status" validate:"required,oneof=draft scheduled published failed"`
	ScheduledAt *time.Time           `json:"scheduledAt"`
}

// GET /api/v1/content?status=&platform=&type=
func (h *Handler) ListContent(c *fiber.Ctx) error {
	f := services.ContentFilter{
		Status:   models.ContentStatus(c.Query("status")),
		Platform: models.Platform(c.Query("platform")),
		Type:     models.ContentType(c.Query("type")),
	}
	if f.Status != "" && !f.Status.Valid() {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown status")
	}
	if f.Platform != "" && !f.Platform.Valid() {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown platform")
	}
	if f.Type != "" && !f.Type.Valid() {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown type")
	}
	items, err := h.content.List(c.UserContext(), middleware.WorkspaceID(c), f)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, items)
}

func (h *Handler) CreateContent(c *fiber.Ctx) error {
	var req contentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.content.Add(c.UserContext(), middleware.WorkspaceID(c), middleware.UserID(c), services.ContentInput{
		Title:            req.Title,
		Body:             req.Body,
		Type:             req.Type,
		Status:           req.Status,
		Tone:             req.Tone,
		SEOScore:         req.SEOScore,
		ReadabilityScore: req.ReadabilityScore,
		Keywords:         req.Keywords,
		Platforms:        req.Platforms,
		ScheduledAt:      req.ScheduledAt,
		IdeaID:           req.IdeaID,
		MediaAssets:      req.MediaAssets,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, item)
}

func (h *Handler) GetContent(c *fiber.Ctx) error {
	item, err := h.content.Get(c.UserContext(), middleware.WorkspaceID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, item)
}

// PATCH /api/v1/content/:id
func (h *Handler) UpdateContent(c *fiber.Ctx) error {
	var req contentPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.content.Update(c.UserContext(), middleware.WorkspaceID(c), c.Params("id"), services.ContentPatch{
		Title:            req.Title,
		Body:             req.Body,
		Type:             req.Type,
		Status:           req.Status,
		Tone:             req.Tone,
		SEOScore:         req.SEOScore,
		ReadabilityScore: req.ReadabilityScore,
		Keywords:         req.Keywords,
		Platforms:        req.Platforms,
		ScheduledAt:      req.ScheduledAt,
		MediaAssets:      req.MediaAssets,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, item)
}

// PUT /api/v1/content/:id/status
func (h *Handler) SetContentStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.content.SetStatus(c.UserContext(), middleware.WorkspaceID(c), c.Params("id"), req.Status, req.ScheduledAt)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, item)
}

func (h *Handler) DeleteContent(c *fiber.Ctx) error {
	if err := h.content.Remove(c.UserContext(), middleware.WorkspaceID(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
