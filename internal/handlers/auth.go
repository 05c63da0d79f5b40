package handlers

import (
	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type onboardingRequest struct {
	Niche       string `json:"niche" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// POST /api/v1/auth/signup
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, res)
}

// POST /api/v1/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, res)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	u, err := h.auth.Me(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, u)
}

func (h *Handler) GetWorkspace(c *fiber.Ctx) error {
	ws, err := h.auth.Workspace(c.UserContext(), middleware.WorkspaceID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, ws)
}

// PUT /api/v1/workspace/onboarding
func (h *Handler) Onboarding(c *fiber.Ctx) error {
	var req onboardingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ws, err := h.auth.Onboard(c.UserContext(), middleware.WorkspaceID(c), req.Niche, req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, ws)
}
