package handlers

import (
	"io"
	"net/http"

	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type mediaRequest struct {
	URL    string             `json:"url" validate:"required,url"`
	Type   models.MediaType   `json:"type" validate:"omitempty,oneof=image video gif"`
	Source models.MediaSource `json:"source" validate:"omitempty,oneof=ai-generated stock uploaded"`
	Alt    string             `json:"alt"`
	Width  int                `json:"width" validate:"min=0"`
	Height int                `json:"height" validate:"min=0"`
}

func (h *Handler) ListMedia(c *fiber.Ctx) error {
	items, err := h.media.List(c.UserContext(), middleware.WorkspaceID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, items)
}

// POST /api/v1/media
// multipart/form-data with "file" (plus optional "source" and "alt") uploads
// to object storage; a JSON body records an external asset by URL.
func (h *Handler) CreateMedia(c *fiber.Ctx) error {
	ws := middleware.WorkspaceID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var req mediaRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		m, err := h.media.Add(c.UserContext(), ws, services.MediaInput{
			URL: req.URL, Type: req.Type, Source: req.Source, Alt: req.Alt, Width: req.Width, Height: req.Height,
		})
		if err != nil {
			return h.fail(c, err)
		}
		return utils.JSONSuccess(c, fiber.StatusCreated, m)
	}

	if fileHeader.Size > services.MaxUploadBytes {
		return utils.JSONError(c, fiber.StatusRequestEntityTooLarge, "file too large")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "cannot read file")
	}

	ct := fileHeader.Header.Get(fiber.HeaderContentType)
	if ct == "" || ct == fiber.MIMEOctetStream {
		ct = http.DetectContentType(data)
	}

	m, err := h.media.Upload(c.UserContext(), ws, services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: ct,
		Data:        data,
		Source:      models.MediaSource(c.FormValue("source")),
		Alt:         c.FormValue("alt"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, m)
}

// GET /api/v1/media/:id/url
func (h *Handler) GetMediaURL(c *fiber.Ctx) error {
	u, err := h.media.SignedURL(c.UserContext(), middleware.WorkspaceID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"url": u})
}

func (h *Handler) DeleteMedia(c *fiber.Ctx) error {
	if err := h.media.Remove(c.UserContext(), middleware.WorkspaceID(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
