package booking

import (
	"iter"
	"time"
)

// Slot is a candidate booking interval [Start, End) of one service duration.
type Slot struct {
	Start time.Time
	End   time.Time
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open interval semantics: [start, end) against [i.Start, i.End).
func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// Window is one bookable day: open/close plus an optional mid-day break.
type Window struct {
	Open  time.Time
	Close time.Time
	Break *Interval
}

func (w Window) Contains(start, end time.Time) bool {
	if start.Before(w.Open) || end.After(w.Close) {
		return false
	}
	if w.Break != nil && w.Break.Overlaps(start, end) {
		return false
	}
	return true
}

// UnlimitedCapacity disables the daily cap in Slots.
const UnlimitedCapacity = -1

// Slots yields the bookable slots of a day in order: candidates spaced by
// duration from window open, last one ending at or before window close.
//
// A candidate is skipped when it starts before now, falls into the break,
// or overlaps a busy interval. busy must be sorted by start and contain the
// day's pending/confirmed bookings for the service. capacityLeft is the
// remaining daily allowance; zero means the day is full and nothing is
// yielded, UnlimitedCapacity means no cap.
//
// The sequence is pure and restartable: ranging over it twice gives the
// same slots.
func Slots(w Window, duration time.Duration, busy []Interval, capacityLeft int, now time.Time) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if duration <= 0 || capacityLeft == 0 {
			return
		}

		idx := 0

		for cur := w.Open; !cur.Add(duration).After(w.Close); cur = cur.Add(duration) {
			start := cur
			end := cur.Add(duration)

			if start.Before(now) {
				continue
			}

			if w.Break != nil && w.Break.Overlaps(start, end) {
				continue
			}

			// busy is sorted, skip intervals that ended before this slot
			for idx < len(busy) && !busy[idx].End.After(start) {
				idx++
			}
			if idx < len(busy) && busy[idx].Start.Before(end) {
				continue
			}

			if !yield(Slot{Start: start, End: end}) {
				return
			}
		}
	}
}

// CollectSlots drains a slot sequence into a slice.
func CollectSlots(seq iter.Seq[Slot]) []Slot {
	var out []Slot
	for s := range seq {
		out = append(out, s)
	}
	return out
}
