package handlers

import (
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type analyticsRequest struct {
	ContentID       string          `json:"contentId" validate:"required"`
	Platform        models.Platform `json:"platform" validate:"required"`
	Impressions     int64           `json:"impressions" validate:"min=0"`
	Clicks          int64           `json:"clicks" validate:"min=0"`
	Engagement      int64           `json:"engagement" validate:"min=0"`
	Shares          int64           `json:"shares" validate:"min=0"`
	Comments        int64           `json:"comments" validate:"min=0"`
	Likes           int64           `json:"likes" validate:"min=0"`
	RankingPosition *int            `json:"rankingPosition" validate:"omitempty,min=1"`
	Date            time.Time       `json:"date"`
}

// GET /api/v1/analytics?contentId=
func (h *Handler) ListAnalytics(c *fiber.Ctx) error {
	rows, err := h.analytics.List(c.UserContext(), middleware.WorkspaceID(c), c.Query("contentId"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, rows)
}

func (h *Handler) RecordAnalytics(c *fiber.Ctx) error {
	var req analyticsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	row, err := h.analytics.Record(c.UserContext(), middleware.WorkspaceID(c), services.AnalyticsInput{
		ContentID:       req.ContentID,
		Platform:        req.Platform,
		Impressions:     req.Impressions,
		Clicks:          req.Clicks,
		Engagement:      req.Engagement,
		Shares:          req.Shares,
		Comments:        req.Comments,
		Likes:           req.Likes,
		RankingPosition: req.RankingPosition,
		Date:            req.Date,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, row)
}

func (h *Handler) AnalyticsSummary(c *fiber.Ctx) error {
	s, err := h.analytics.Summary(c.UserContext(), middleware.WorkspaceID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, s)
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	d, err := h.analytics.Dashboard(c.UserContext(), middleware.WorkspaceID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, d)
}
