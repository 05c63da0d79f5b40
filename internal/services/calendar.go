package services

import (
	"context"
	"sort"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
)

type CalendarDay struct {
	Day   int               `json:"day"`
	Items []*models.Content `json:"items"`
}

type CalendarMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// Offset is the weekday of the 1st (0 = Sunday), the number of blank
	// cells before it in a week grid.
	Offset int           `json:"offset"`
	Days   []CalendarDay `json:"days"`
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// DayItems returns the scheduled items whose scheduled time, read in loc,
// falls on year-month-day, earliest first.
func DayItems(items []*models.Content, year int, month time.Month, day int, loc *time.Location) []*models.Content {
	if loc == nil {
		loc = time.Local
	}
	out := filter(items, func(c *models.Content) bool {
		if c.Status != models.StatusScheduled || c.ScheduledAt == nil {
			return false
		}
		y, m, d := c.ScheduledAt.In(loc).Date()
		return y == year && m == month && d == day
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(*out[j].ScheduledAt) })
	return out
}

// Month buckets the scheduled items of a month by day. Every day of the
// month gets a bucket, empty or not.
func Month(items []*models.Content, year int, month time.Month, loc *time.Location) CalendarMonth {
	if loc == nil {
		loc = time.Local
	}
	n := DaysIn(year, month, loc)
	cm := CalendarMonth{
		Year:   year,
		Month:  month,
		Offset: int(time.Date(year, month, 1, 0, 0, 0, 0, loc).Weekday()),
		Days:   make([]CalendarDay, n),
	}
	for d := 1; d <= n; d++ {
		cm.Days[d-1] = CalendarDay{Day: d, Items: DayItems(items, year, month, d, loc)}
	}
	return cm
}

func (s *ContentService) Calendar(ctx context.Context, workspaceID string, year int, month time.Month, loc *time.Location) (CalendarMonth, error) {
	items, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return CalendarMonth{}, err
	}
	return Month(items, year, month, loc), nil
}

func (s *ContentService) CalendarDay(ctx context.Context, workspaceID string, year int, month time.Month, day int, loc *time.Location) ([]*models.Content, error) {
	items, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return DayItems(items, year, month, day, loc), nil
}
