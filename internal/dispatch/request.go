package dispatch

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/dentalvoice/frontdesk/internal/appointment"
	"github.com/dentalvoice/frontdesk/internal/availability"
)

// Function names accepted by the dispatcher.
const (
	FuncCheckAvailability = "check_availability"
	FuncNextSlots         = "get_next_slots"
	FuncCreate            = "create_appointment"
	FuncUpdate            = "update_appointment"
	FuncCancel            = "cancel_appointment"
)

// Request is one of the five scheduling function calls. The set is
// closed: only this package constructs requests, via ParseRequest or
// the typed constructors.
type Request interface {
	// CallID identifies the call for result correlation.
	CallID() string
	// Function is the wire name of the requested operation.
	Function() string

	isRequest()
}

type baseRequest struct {
	id string
}

func (b baseRequest) CallID() string { return b.id }
func (baseRequest) isRequest()       {}

// CheckAvailabilityRequest asks for free slots in a window.
type CheckAvailabilityRequest struct {
	baseRequest
	Params appointment.CheckParams
}

func (CheckAvailabilityRequest) Function() string { return FuncCheckAvailability }

// NextSlotsRequest asks for the earliest available slots.
type NextSlotsRequest struct {
	baseRequest
	Params appointment.NextSlotsParams
}

func (NextSlotsRequest) Function() string { return FuncNextSlots }

// CreateRequest books an appointment.
type CreateRequest struct {
	baseRequest
	Params appointment.CreateParams
}

func (CreateRequest) Function() string { return FuncCreate }

// UpdateRequest reschedules or relabels an appointment.
type UpdateRequest struct {
	baseRequest
	Params appointment.UpdateParams
}

func (UpdateRequest) Function() string { return FuncUpdate }

// CancelRequest deletes an appointment.
type CancelRequest struct {
	baseRequest
	Params appointment.CancelParams
}

func (CancelRequest) Function() string { return FuncCancel }

// ParseRequest builds a typed Request from a function name and the
// loose argument map a transport hands over. Arguments are extracted
// tolerantly (numbers may arrive as JSON float64 or as strings);
// missing identity fields are left for the handler to report, so the
// caller gets a speakable prompt instead of a protocol error. An empty
// callID is replaced with a fresh UUID.
func ParseRequest(callID, function string, args map[string]any) (Request, error) {
	if callID == "" {
		callID = uuid.NewString()
	}
	base := baseRequest{id: callID}

	identity := appointment.Identity{
		PatientName:  stringArg(args, "patient_name"),
		PatientPhone: stringArg(args, "patient_phone"),
	}

	switch function {
	case FuncCheckAvailability:
		return CheckAvailabilityRequest{base, appointment.CheckParams{
			Identity:   identity,
			StartDate:  stringArg(args, "start_date"),
			EndDate:    stringArg(args, "end_date"),
			Preference: availability.TimePreference(stringArg(args, "preferred_time")),
		}}, nil

	case FuncNextSlots:
		return NextSlotsRequest{base, appointment.NextSlotsParams{
			Identity: identity,
			FromDate: stringArg(args, "from_date"),
			Count:    intArg(args, "count"),
		}}, nil

	case FuncCreate:
		return CreateRequest{base, appointment.CreateParams{
			Identity: identity,
			Start:    stringArg(args, "start_datetime"),
			End:      stringArg(args, "end_datetime"),
			Type:     stringArg(args, "appointment_type"),
			Notes:    stringArg(args, "notes"),
		}}, nil

	case FuncUpdate:
		return UpdateRequest{base, appointment.UpdateParams{
			Identity: identity,
			EventID:  stringArg(args, "event_id"),
			Start:    stringArg(args, "start_datetime"),
			End:      stringArg(args, "end_datetime"),
			Type:     stringArg(args, "appointment_type"),
			Notes:    stringArg(args, "notes"),
		}}, nil

	case FuncCancel:
		return CancelRequest{base, appointment.CancelParams{
			Identity: identity,
			EventID:  stringArg(args, "event_id"),
		}}, nil
	}

	return nil, fmt.Errorf("unknown function %q", function)
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	if args == nil {
		return 0
	}
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
