package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-studio/studio-scheduler/internal/models"
)

func TestDayWindow(t *testing.T) {
	d := day(t)

	wh := &models.WorkingHours{
		Weekday:   int(d.Weekday()),
		StartTime: "09:00",
		EndTime:   "17:00",
		Active:    true,
	}

	w, open := DayWindow(wh, d)
	require.True(t, open)

	assert.Equal(t, at(d, 9, 0), w.Open)
	assert.Equal(t, at(d, 17, 0), w.Close)
	assert.Equal(t, d.Location(), w.Open.Location())
	assert.Nil(t, w.Break)
}

func TestDayWindow_WithBreak(t *testing.T) {
	d := day(t)

	wh := &models.WorkingHours{
		StartTime:  "10:00",
		EndTime:    "18:00",
		BreakStart: "13:00",
		BreakEnd:   "14:00",
		Active:     true,
	}

	w, open := DayWindow(wh, d)
	require.True(t, open)
	require.NotNil(t, w.Break)

	assert.Equal(t, at(d, 13, 0), w.Break.Start)
	assert.Equal(t, at(d, 14, 0), w.Break.End)
}

func TestDayWindow_Closed(t *testing.T) {
	d := day(t)

	_, open := DayWindow(nil, d)
	assert.False(t, open)

	_, open = DayWindow(&models.WorkingHours{StartTime: "09:00", EndTime: "17:00", Active: false}, d)
	assert.False(t, open)

	_, open = DayWindow(&models.WorkingHours{Active: true}, d)
	assert.False(t, open)
}

func TestBusyIntervals(t *testing.T) {
	d := day(t)

	bookings := []models.Booking{
		{StartTime: at(d, 9, 0), EndTime: at(d, 10, 0)},
		{StartTime: at(d, 11, 0), EndTime: at(d, 12, 30)},
	}

	got := BusyIntervals(bookings)

	require.Len(t, got, 2)
	assert.Equal(t, Interval{Start: at(d, 9, 0), End: at(d, 10, 0)}, got[0])
	assert.Equal(t, Interval{Start: at(d, 11, 0), End: at(d, 12, 30)}, got[1])

	assert.Empty(t, BusyIntervals(nil))
}
