package services

import (
	"testing"
	"time"

	"github.com/emmyxjay/contentFlow-New/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledAt(t time.Time) *models.Content {
	return &models.Content{ID: t.Format(time.RFC3339), Status: models.StatusScheduled, ScheduledAt: &t}
}

func TestDayItems(t *testing.T) {
	late := scheduledAt(time.Date(2024, 5, 14, 23, 30, 0, 0, time.UTC))
	early := scheduledAt(time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC))
	other := scheduledAt(time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC))
	draft := &models.Content{ID: "draft", Status: models.StatusDraft, ScheduledAt: early.ScheduledAt}
	unset := &models.Content{ID: "unset", Status: models.StatusScheduled}
	items := []*models.Content{late, other, draft, unset, early}

	got := DayItems(items, 2024, time.May, 14, time.UTC)
	require.Len(t, got, 2)
	assert.Same(t, early, got[0])
	assert.Same(t, late, got[1])

	// 23:30 UTC is already the 15th in Tokyo.
	tokyo := time.FixedZone("JST", 9*60*60)
	got = DayItems(items, 2024, time.May, 15, tokyo)
	assert.Len(t, got, 2)
	assert.Empty(t, DayItems(items, 2023, time.May, 14, time.UTC))
}

func TestMonth(t *testing.T) {
	items := []*models.Content{
		scheduledAt(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)),
		scheduledAt(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)),
		scheduledAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	m := Month(items, 2024, time.February, time.UTC)

	assert.Equal(t, 4, m.Offset) // 1 Feb 2024 was a Thursday
	require.Len(t, m.Days, 29)
	assert.Equal(t, 1, m.Days[0].Day)
	assert.Len(t, m.Days[0].Items, 1)
	assert.Len(t, m.Days[28].Items, 1)
	assert.Empty(t, m.Days[14].Items)
	assert.NotNil(t, m.Days[14].Items)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 28, DaysIn(2023, time.February, time.UTC))
	assert.Equal(t, 29, DaysIn(2024, time.February, time.UTC))
	assert.Equal(t, 31, DaysIn(2024, time.December, time.UTC))
}
