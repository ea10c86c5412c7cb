package availability

import (
	"fmt"
	"time"
)

// MaxPresentedSlots is the hard cap on slots spoken back to a caller.
// Longer lists are useless over the phone.
const MaxPresentedSlots = 10

// PresentedSlot is a free slot decorated for the conversational
// agent: machine-readable timestamps plus locale-formatted parts the
// agent can speak verbatim.
type PresentedSlot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration"`
	Day             string `json:"day"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	EndTime         string `json:"end_time"`
	Readable        string `json:"readable"`
}

// Greek weekday names indexed by time.Weekday (Sunday first).
var weekdayNames = [7]string{
	"Κυριακή",
	"Δευτέρα",
	"Τρίτη",
	"Τετάρτη",
	"Πέμπτη",
	"Παρασκευή",
	"Σάββατο",
}

// WeekdayName returns the Greek name for t's weekday.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// Present truncates slots to limit and formats each for speech.
// Limits below one or above MaxPresentedSlots are clamped to the cap.
// Present is pure: it never mutates its input and is deterministic.
func Present(slots []FreeSlot, limit int) []PresentedSlot {
	if limit < 1 || limit > MaxPresentedSlots {
		limit = MaxPresentedSlots
	}
	if len(slots) > limit {
		slots = slots[:limit]
	}

	presented := make([]PresentedSlot, 0, len(slots))
	for _, slot := range slots {
		day := WeekdayName(slot.Start)
		date := slot.Start.Format("02/01/2006")
		start := slot.Start.Format("15:04")

		presented = append(presented, PresentedSlot{
			Start:           slot.Start.Format(time.RFC3339),
			End:             slot.End.Format(time.RFC3339),
			DurationMinutes: int(slot.Duration.Minutes()),
			Day:             day,
			Date:            date,
			Time:            start,
			EndTime:         slot.End.Format("15:04"),
			Readable:        fmt.Sprintf("%s %s στις %s", day, date, start),
		})
	}

	return presented
}
