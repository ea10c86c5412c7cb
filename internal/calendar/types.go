package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// BusyInterval is a time range during which the calendar is booked.
// Intervals are returned in the gateway's configured location so they
// compare directly against locally generated slot times.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// EventInput represents the input for creating a calendar event.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time

	// TimeZone overrides the gateway default for this event.
	TimeZone string
}

// EventPatch carries the fields to change on an existing event.
// Zero values mean "leave untouched"; only provided fields are
// written back (merge-patch, not a full replace).
type EventPatch struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// EventSummary represents a simplified calendar event.
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Status      string
	HTMLLink    string
}

// toEventSummary converts a Google Calendar event to an EventSummary.
func toEventSummary(event *calendar.Event, loc *time.Location) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Status:      event.Status,
		HTMLLink:    event.HtmlLink,
	}

	if event.Start != nil && event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			summary.Start = t.In(loc)
		}
	}
	if event.End != nil && event.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
			summary.End = t.In(loc)
		}
	}

	return summary
}
