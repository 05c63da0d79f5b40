package handlers

import (
	"errors"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/repository"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	gen       *services.GenerationService
	auth      *services.AuthService
	ideas     *services.IdeaService
	content   *services.ContentService
	media     *services.MediaService
	analytics *services.AnalyticsService
	log       *zap.Logger
}

type Deps struct {
	Generation *services.GenerationService
	Auth       *services.AuthService
	Ideas      *services.IdeaService
	Content    *services.ContentService
	Media      *services.MediaService
	Analytics  *services.AnalyticsService
}

func NewHandler(d Deps, logger *zap.Logger) *Handler {
	return &Handler{
		gen:       d.Generation,
		auth:      d.Auth,
		ideas:     d.Ideas,
		content:   d.Content,
		media:     d.Media,
		analytics: d.Analytics,
		log:       logger,
	}
}

// fail maps a service error onto the resource API envelope.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidTransition):
		return utils.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrStatusChanged):
		return utils.JSONError(c, fiber.StatusConflict, "content status changed, reload and retry")
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrUnsupportedMedia):
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTopicRequired):
		return utils.JSONError(c, fiber.StatusBadRequest, "Topic is required")
	case errors.Is(err, services.ErrIdeasParse):
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to parse ideas")
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.JSONError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, repository.ErrDuplicate):
		return utils.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		return utils.JSONError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
}

// bind parses the JSON body into dst and runs struct validation.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.Validate(dst); err != nil {
		return utils.JSONValidationError(c, err)
	}
	return nil
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
