package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	return time.Date(2026, 10, 14, 0, 0, 0, 0, loc)
}

func at(d time.Time, hour, min int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, d.Location())
}

func window(d time.Time, openH, closeH int) Window {
	return Window{Open: at(d, openH, 0), Close: at(d, closeH, 0)}
}

// distantPast makes the now-filter a no-op for tests about layout.
var distantPast = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSlots_SixtyMinuteServiceTwoHourWindow(t *testing.T) {
	d := day(t)

	slots := CollectSlots(Slots(
		window(d, 9, 11),
		60*time.Minute,
		nil,
		UnlimitedCapacity,
		distantPast,
	))

	require.Len(t, slots, 2)
	assert.Equal(t, at(d, 9, 0), slots[0].Start)
	assert.Equal(t, at(d, 10, 0), slots[0].End)
	assert.Equal(t, at(d, 10, 0), slots[1].Start)
	assert.Equal(t, at(d, 11, 0), slots[1].End)
}

func TestSlots_ExistingBookingExcludesSlot(t *testing.T) {
	d := day(t)

	busy := []Interval{
		{Start: at(d, 10, 0), End: at(d, 11, 0)},
	}

	slots := CollectSlots(Slots(
		window(d, 9, 12),
		60*time.Minute,
		busy,
		UnlimitedCapacity,
		distantPast,
	))

	require.Len(t, slots, 2)
	assert.Equal(t, at(d, 9, 0), slots[0].Start)
	assert.Equal(t, at(d, 11, 0), slots[1].Start)
}

func TestSlots_PartialOverlapExcludesSlot(t *testing.T) {
	d := day(t)

	// A booking straddling two candidates knocks both out.
	busy := []Interval{
		{Start: at(d, 9, 30), End: at(d, 10, 30)},
	}

	slots := CollectSlots(Slots(
		window(d, 9, 12),
		60*time.Minute,
		busy,
		UnlimitedCapacity,
		distantPast,
	))

	require.Len(t, slots, 1)
	assert.Equal(t, at(d, 11, 0), slots[0].Start)
}

func TestSlots_PastSlotsSkipped(t *testing.T) {
	d := day(t)

	slots := CollectSlots(Slots(
		window(d, 9, 12),
		60*time.Minute,
		nil,
		UnlimitedCapacity,
		at(d, 10, 30),
	))

	require.Len(t, slots, 1)
	assert.Equal(t, at(d, 11, 0), slots[0].Start)
}

func TestSlots_BreakExcludesSlots(t *testing.T) {
	d := day(t)

	w := window(d, 9, 14)
	w.Break = &Interval{Start: at(d, 12, 0), End: at(d, 13, 0)}

	slots := CollectSlots(Slots(w, 60*time.Minute, nil, UnlimitedCapacity, distantPast))

	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	assert.Equal(t, []time.Time{
		at(d, 9, 0),
		at(d, 10, 0),
		at(d, 11, 0),
		at(d, 13, 0),
	}, starts)
}

func TestSlots_ZeroCapacityYieldsNothing(t *testing.T) {
	d := day(t)

	slots := CollectSlots(Slots(
		window(d, 9, 17),
		60*time.Minute,
		nil,
		0,
		distantPast,
	))

	assert.Empty(t, slots)
}

func TestSlots_DurationLongerThanWindow(t *testing.T) {
	d := day(t)

	slots := CollectSlots(Slots(
		window(d, 9, 10),
		90*time.Minute,
		nil,
		UnlimitedCapacity,
		distantPast,
	))

	assert.Empty(t, slots)
}

func TestSlots_NonPositiveDuration(t *testing.T) {
	d := day(t)

	assert.Empty(t, CollectSlots(Slots(window(d, 9, 17), 0, nil, UnlimitedCapacity, distantPast)))
	assert.Empty(t, CollectSlots(Slots(window(d, 9, 17), -time.Hour, nil, UnlimitedCapacity, distantPast)))
}

func TestSlots_RestartableAndOrdered(t *testing.T) {
	d := day(t)

	busy := []Interval{
		{Start: at(d, 10, 0), End: at(d, 11, 0)},
		{Start: at(d, 14, 0), End: at(d, 15, 0)},
	}

	seq := Slots(window(d, 9, 17), 60*time.Minute, busy, UnlimitedCapacity, distantPast)

	first := CollectSlots(seq)
	second := CollectSlots(seq)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i].Start.After(first[i-1].Start), "slots must be in ascending order")
	}

	for _, s := range first {
		assert.Equal(t, 60*time.Minute, s.End.Sub(s.Start))
		assert.False(t, s.Start.Before(at(d, 9, 0)))
		assert.False(t, s.End.After(at(d, 17, 0)))
		for _, b := range busy {
			assert.False(t, b.Overlaps(s.Start, s.End), "slot %v overlaps busy %v", s, b)
		}
	}
}

func TestSlots_EarlyBreakStopsSequence(t *testing.T) {
	d := day(t)

	seq := Slots(window(d, 9, 17), 60*time.Minute, nil, UnlimitedCapacity, distantPast)

	var got []Slot
	for s := range seq {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}

	require.Len(t, got, 3)
	assert.Equal(t, at(d, 11, 0), got[2].Start)
}

func TestIntervalOverlaps_HalfOpen(t *testing.T) {
	d := day(t)
	i := Interval{Start: at(d, 10, 0), End: at(d, 11, 0)}

	// Back-to-back slots share a boundary but do not overlap.
	assert.False(t, i.Overlaps(at(d, 9, 0), at(d, 10, 0)))
	assert.False(t, i.Overlaps(at(d, 11, 0), at(d, 12, 0)))

	assert.True(t, i.Overlaps(at(d, 10, 30), at(d, 11, 30)))
	assert.True(t, i.Overlaps(at(d, 9, 30), at(d, 10, 30)))
	assert.True(t, i.Overlaps(at(d, 9, 0), at(d, 12, 0)))
}

func TestWindowContains(t *testing.T) {
	d := day(t)

	w := window(d, 9, 17)
	w.Break = &Interval{Start: at(d, 12, 0), End: at(d, 13, 0)}

	assert.True(t, w.Contains(at(d, 9, 0), at(d, 10, 0)))
	assert.True(t, w.Contains(at(d, 16, 0), at(d, 17, 0)))

	assert.False(t, w.Contains(at(d, 8, 0), at(d, 9, 0)))
	assert.False(t, w.Contains(at(d, 16, 30), at(d, 17, 30)))
	assert.False(t, w.Contains(at(d, 12, 30), at(d, 13, 30)))
}
