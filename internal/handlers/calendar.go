package handlers

import (
	"strconv"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/emmyxjay/contentFlow-New/internal/services"
	"github.com/emmyxjay/contentFlow-New/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// calendarQuery reads year, month and tz, defaulting to the current month
// in the server's zone.
func calendarQuery(c *fiber.Ctx) (int, time.Month, *time.Location, error) {
	loc := time.Local
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return 0, 0, nil, fiber.NewError(fiber.StatusBadRequest, "unknown time zone")
		}
		loc = l
	}
	now := time.Now().In(loc)
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return 0, 0, nil, fiber.NewError(fiber.StatusBadRequest, "month must be 1-12")
	}
	return year, time.Month(month), loc, nil
}

func queryError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return utils.JSONError(c, fe.Code, fe.Message)
	}
	return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
}

// GET /api/v1/calendar?year=&month=&tz=
func (h *Handler) CalendarMonth(c *fiber.Ctx) error {
	year, month, loc, err := calendarQuery(c)
	if err != nil {
		return queryError(c, err)
	}
	cm, err := h.content.Calendar(c.UserContext(), middleware.WorkspaceID(c), year, month, loc)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, cm)
}

// GET /api/v1/calendar/day?year=&month=&day=&tz=
func (h *Handler) CalendarDay(c *fiber.Ctx) error {
	year, month, loc, err := calendarQuery(c)
	if err != nil {
		return queryError(c, err)
	}
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil || day < 1 || day > services.DaysIn(year, month, loc) {
		return utils.JSONError(c, fiber.StatusBadRequest, "day is out of range")
	}
	items, err := h.content.CalendarDay(c.UserContext(), middleware.WorkspaceID(c), year, month, day, loc)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, items)
}
