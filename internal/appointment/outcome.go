package appointment

import (
	"github.com/dentalvoice/frontdesk/internal/availability"
	"github.com/dentalvoice/frontdesk/internal/calendar"
)

// ErrorKind classifies a failed outcome.
type ErrorKind string

const (
	// ErrorMissingIdentity means the caller has not supplied both a
	// name and a phone number. Detected locally, no gateway call.
	ErrorMissingIdentity ErrorKind = "missing_identity"

	// ErrorBadRequest means a required argument is absent or
	// unparseable (dates, event IDs).
	ErrorBadRequest ErrorKind = "bad_request"

	// ErrorGatewayUnavailable means no calendar gateway is configured.
	ErrorGatewayUnavailable ErrorKind = "gateway_unavailable"

	// ErrorGateway is any calendar API failure other than NotFound.
	ErrorGateway ErrorKind = "gateway_error"

	// ErrorNotFound means the target event no longer exists. Update
	// and cancel soft-fail this case: the appointment may already be
	// canceled.
	ErrorNotFound ErrorKind = "not_found"
)

// Outcome is the value every operation returns. Success outcomes carry
// the operation's payload; failure outcomes carry an ErrorKind and a
// localized apology. Message is always speakable.
type Outcome struct {
	Success    bool      `json:"success"`
	Error      ErrorKind `json:"error,omitempty"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`

	HasAvailability *bool                        `json:"has_availability,omitempty"`
	TotalSlots      int                          `json:"total_slots,omitempty"`
	ShowingSlots    int                          `json:"showing_slots,omitempty"`
	Slots           []availability.PresentedSlot `json:"available_slots,omitempty"`
	NextSlot        *availability.PresentedSlot  `json:"next_available,omitempty"`

	EventID      string                  `json:"event_id,omitempty"`
	Appointments []calendar.EventSummary `json:"appointments,omitempty"`
}

func failure(kind ErrorKind, message string) Outcome {
	return Outcome{Success: false, Error: kind, Message: message}
}
