package booking

import (
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/models"
)

// DayWindow projects a WorkingHours row onto a concrete date in the studio's
// timezone. Returns false when the studio is closed that weekday.
func DayWindow(wh *models.WorkingHours, date time.Time) (Window, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return Window{}, false
	}

	loc := date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	w := Window{
		Open:  parseHM(wh.StartTime),
		Close: parseHM(wh.EndTime),
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		w.Break = &Interval{
			Start: parseHM(wh.BreakStart),
			End:   parseHM(wh.BreakEnd),
		}
	}

	return w, true
}

// BusyIntervals maps the day's bookings to sorted intervals for Slots.
// Callers must pass bookings ordered by start time.
func BusyIntervals(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out
}
