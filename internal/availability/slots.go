package availability

import (
	"time"

	"github.com/dentalvoice/frontdesk/internal/calendar"
)

// Scheduling policy defaults.
const (
	// DefaultSlotDuration is the length of a bookable slot.
	DefaultSlotDuration = 30 * time.Minute

	// DefaultCheckSpanDays bounds an availability check when the
	// caller gives no end date.
	DefaultCheckSpanDays = 7

	// DefaultNextSpanDays bounds a next-available-slots lookup.
	DefaultNextSpanDays = 14
)

// WorkingHours delimits the bookable part of a day, as local hours.
type WorkingHours struct {
	Open  int
	Close int
}

// DefaultWorkingHours is the clinic's 09:00-18:00 schedule.
var DefaultWorkingHours = WorkingHours{Open: 9, Close: 18}

// FreeSlot is a bookable time window. End - Start always equals
// Duration, and [Start, End) intersects no busy interval of the query
// that produced it.
type FreeSlot struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Window is the query scope for an availability computation.
// Start must not be after End.
type Window struct {
	Start time.Time
	End   time.Time
}

// ClampStart substitutes today for a start date that lies in the
// past. The comparison is on date components only; a start of
// yesterday 23:00 and yesterday 08:00 both clamp to today's midnight.
// This silent correction is deliberate policy: callers routinely
// compute dates relative to a stale "now" and should not be failed
// for it.
func ClampStart(start, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, today.Location())
	if startDay.Before(today) {
		return today
	}
	return start
}

// WithDefaultSpan fills a missing End with Start plus spanDays.
func (w Window) WithDefaultSpan(spanDays int) Window {
	if w.End.IsZero() {
		w.End = w.Start.AddDate(0, 0, spanDays)
	}
	return w
}

// Calculator generates free slots under a fixed clinic policy.
// The zero value is unusable; use NewCalculator.
type Calculator struct {
	hours        WorkingHours
	slotDuration time.Duration
}

// NewCalculator creates a Calculator, falling back to the default
// working hours and slot duration for zero inputs.
func NewCalculator(hours WorkingHours, slotDuration time.Duration) Calculator {
	if hours.Open == 0 && hours.Close == 0 {
		hours = DefaultWorkingHours
	}
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}
	return Calculator{hours: hours, slotDuration: slotDuration}
}

// SlotDuration returns the configured slot length.
func (c Calculator) SlotDuration() time.Duration {
	return c.slotDuration
}

// FreeSlots returns every bookable slot inside the window that does
// not intersect a busy interval, in day-then-time ascending order.
//
// Days run from the window's start date to its end date inclusive;
// Saturdays and Sundays are skipped. Within a day, candidate slots
// tile the working hours contiguously, but a slot starting before the
// window's start instant or ending after its end instant is excluded.
// A window ending exactly at midnight includes its whole final day.
// A slot [s, e) is free iff for every busy interval [bs, be):
// s >= be || e <= bs.
func (c Calculator) FreeSlots(w Window, busy []calendar.BusyInterval) []FreeSlot {
	var free []FreeSlot

	loc := w.Start.Location()
	day := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, loc)
	lastDay := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, loc)

	end := w.End
	if end.Equal(lastDay) {
		end = lastDay.Add(24 * time.Hour)
	}

	for !day.After(lastDay) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			day = day.AddDate(0, 0, 1)
			continue
		}

		dayOpen := day.Add(time.Duration(c.hours.Open) * time.Hour)
		dayClose := day.Add(time.Duration(c.hours.Close) * time.Hour)

		for slotStart := dayOpen; !slotStart.Add(c.slotDuration).After(dayClose); slotStart = slotStart.Add(c.slotDuration) {
			slotEnd := slotStart.Add(c.slotDuration)
			if slotStart.Before(w.Start) || slotEnd.After(end) {
				continue
			}
			if isFree(slotStart, slotEnd, busy) {
				free = append(free, FreeSlot{
					Start:    slotStart,
					End:      slotEnd,
					Duration: c.slotDuration,
				})
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	return free
}

// isFree applies the open-interval intersection test against every
// busy interval.
func isFree(slotStart, slotEnd time.Time, busy []calendar.BusyInterval) bool {
	for _, b := range busy {
		if slotStart.Before(b.End) && slotEnd.After(b.Start) {
			return false
		}
	}
	return true
}
