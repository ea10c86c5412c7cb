package appointment

import (
	"context"
	"time"

	"github.com/dentalvoice/frontdesk/internal/availability"
	"github.com/dentalvoice/frontdesk/internal/calendar"
)

// Gateway is the calendar surface the service depends on. It is
// satisfied by *calendar.Client and by test doubles.
type Gateway interface {
	QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.BusyInterval, error)
	InsertEvent(ctx context.Context, input calendar.EventInput) (*calendar.EventSummary, error)
	GetEvent(ctx context.Context, eventID string) (*calendar.EventSummary, error)
	PatchEvent(ctx context.Context, eventID string, patch calendar.EventPatch) (*calendar.EventSummary, error)
	DeleteEvent(ctx context.Context, eventID string) error
	ListUpcoming(ctx context.Context, daysAhead int) ([]calendar.EventSummary, error)
}

// Identity is the caller's claim of who they are. Both fields are
// required before any operation touches the calendar.
type Identity struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
}

// Complete reports whether both identity fields are present.
func (id Identity) Complete() bool {
	return id.PatientName != "" && id.PatientPhone != ""
}

// CheckParams are the inputs to an availability check. StartDate is an
// ISO date or datetime; an empty or past value resolves to today.
// EndDate defaults to StartDate plus seven days.
type CheckParams struct {
	Identity
	StartDate  string
	EndDate    string
	Preference availability.TimePreference
}

// NextSlotsParams are the inputs to a next-available-slots lookup.
// Count defaults to 5 and is capped at 10.
type NextSlotsParams struct {
	Identity
	FromDate string
	Count    int
}

// CreateParams describe a new appointment. Start and End are required
// ISO datetimes. Type defaults to a routine checkup.
type CreateParams struct {
	Identity
	Start string
	End   string
	Type  string
	Notes string
}

// UpdateParams describe a partial appointment change. Zero-valued
// fields are left untouched on the event.
type UpdateParams struct {
	Identity
	EventID string
	Start   string
	End     string
	Type    string
	Notes   string
}

// CancelParams identify an appointment to delete.
type CancelParams struct {
	Identity
	EventID string
}
