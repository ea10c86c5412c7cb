package scheduling_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dentalvoice/frontdesk/internal/dispatch"
	"github.com/dentalvoice/frontdesk/internal/instrumentation"
	"github.com/dentalvoice/frontdesk/internal/server"
	"github.com/dentalvoice/frontdesk/internal/tools/common"
)

// RegisterSchedulingTools registers the scheduling function tools with
// the MCP server.
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	checkAvailabilityTool := mcp.NewTool(dispatch.FuncCheckAvailability,
		mcp.WithDescription("Check free appointment slots in a date range. Requires the patient's name and phone number before the calendar is consulted."),
		mcp.WithString("patient_name",
			mcp.Description("Patient's full name"),
		),
		mcp.WithString("patient_phone",
			mcp.Description("Patient's phone number"),
		),
		mcp.WithString("start_date",
			mcp.Description("First day to check (ISO date, e.g. '2026-09-01'). Defaults to today; past dates are clamped to today."),
		),
		mcp.WithString("end_date",
			mcp.Description("Last day to check (ISO date). Defaults to one week after start_date."),
		),
		mcp.WithString("preferred_time",
			mcp.Description("Preferred part of the day"),
			mcp.Enum("morning", "afternoon", "evening", "any"),
		),
	)
	s.AddTool(checkAvailabilityTool, common.InstrumentedToolHandlerWithService(
		dispatch.FuncCheckAvailability, instrumentation.ServiceCalendar, instrumentation.OperationFreeBusy, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduling(ctx, request, sc, dispatch.FuncCheckAvailability)
		}))

	nextSlotsTool := mcp.NewTool(dispatch.FuncNextSlots,
		mcp.WithDescription("Find the next available appointment slots, looking up to two weeks ahead."),
		mcp.WithString("patient_name",
			mcp.Description("Patient's full name"),
		),
		mcp.WithString("patient_phone",
			mcp.Description("Patient's phone number"),
		),
		mcp.WithString("from_date",
			mcp.Description("Earliest day to consider (ISO date). Defaults to today."),
		),
		mcp.WithNumber("count",
			mcp.Description("How many slots to return (default 5, maximum 10)"),
		),
	)
	s.AddTool(nextSlotsTool, common.InstrumentedToolHandlerWithService(
		dispatch.FuncNextSlots, instrumentation.ServiceCalendar, instrumentation.OperationFreeBusy, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduling(ctx, request, sc, dispatch.FuncNextSlots)
		}))

	createTool := mcp.NewTool(dispatch.FuncCreate,
		mcp.WithDescription("Book a new appointment at a specific time."),
		mcp.WithString("patient_name",
			mcp.Description("Patient's full name"),
		),
		mcp.WithString("patient_phone",
			mcp.Description("Patient's phone number"),
		),
		mcp.WithString("start_datetime",
			mcp.Required(),
			mcp.Description("Appointment start (ISO datetime, e.g. '2026-09-01T10:00:00')"),
		),
		mcp.WithString("end_datetime",
			mcp.Required(),
			mcp.Description("Appointment end (ISO datetime)"),
		),
		mcp.WithString("appointment_type",
			mcp.Description("Kind of visit, e.g. 'Καθαρισμός'. Defaults to a routine checkup."),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes for the clinic"),
		),
	)
	s.AddTool(createTool, common.InstrumentedToolHandlerWithService(
		dispatch.FuncCreate, instrumentation.ServiceCalendar, instrumentation.OperationInsert, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduling(ctx, request, sc, dispatch.FuncCreate)
		}))

	updateTool := mcp.NewTool(dispatch.FuncUpdate,
		mcp.WithDescription("Reschedule or relabel an existing appointment. Only the provided fields are changed."),
		mcp.WithString("patient_name",
			mcp.Description("Patient's full name"),
		),
		mcp.WithString("patient_phone",
			mcp.Description("Patient's phone number"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Identifier of the appointment to change"),
		),
		mcp.WithString("start_datetime",
			mcp.Description("New start (ISO datetime)"),
		),
		mcp.WithString("end_datetime",
			mcp.Description("New end (ISO datetime)"),
		),
		mcp.WithString("appointment_type",
			mcp.Description("New kind of visit"),
		),
		mcp.WithString("notes",
			mcp.Description("Replacement notes"),
		),
	)
	s.AddTool(updateTool, common.InstrumentedToolHandlerWithService(
		dispatch.FuncUpdate, instrumentation.ServiceCalendar, instrumentation.OperationPatch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduling(ctx, request, sc, dispatch.FuncUpdate)
		}))

	cancelTool := mcp.NewTool(dispatch.FuncCancel,
		mcp.WithDescription("Cancel an appointment. Canceling an already-removed appointment is reported, not treated as a hard failure."),
		mcp.WithString("patient_name",
			mcp.Description("Patient's full name"),
		),
		mcp.WithString("patient_phone",
			mcp.Description("Patient's phone number"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Identifier of the appointment to cancel"),
		),
	)
	s.AddTool(cancelTool, common.InstrumentedToolHandlerWithService(
		dispatch.FuncCancel, instrumentation.ServiceCalendar, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScheduling(ctx, request, sc, dispatch.FuncCancel)
		}))

	upcomingTool := mcp.NewTool("list_upcoming_appointments",
		mcp.WithDescription("List the clinic's booked appointments for the coming days."),
		mcp.WithNumber("days_ahead",
			mcp.Description("How many days ahead to list (default 7)"),
		),
	)
	s.AddTool(upcomingTool, common.InstrumentedToolHandlerWithService(
		"list_upcoming_appointments", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpcoming(ctx, request, sc)
		}))

	return nil
}

// handleScheduling routes a tool call through the dispatcher so the
// acknowledgement utterance is spoken before the calendar answers.
func handleScheduling(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, function string) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		args = map[string]interface{}{}
	}
	fillIdentity(ctx, sc, args)

	req, err := dispatch.ParseRequest("", function, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := sc.Dispatcher().Call(ctx, req)
	return outcomeResult(result.Outcome)
}

func handleUpcoming(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	daysAhead := 7
	if v, ok := request.GetArguments()["days_ahead"].(float64); ok && v > 0 {
		daysAhead = int(v)
	}
	return outcomeResult(sc.Service().Upcoming(ctx, daysAhead))
}

// fillIdentity injects the session's identified caller into the
// argument map when the agent did not pass the identity explicitly.
// Explicit arguments win: the caller may book for someone else.
func fillIdentity(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) {
	session := mcpserver.ClientSessionFromContext(ctx)
	if session == nil {
		return
	}
	caller, ok := sc.Sessions().Caller(session.SessionID())
	if !ok {
		return
	}
	if phone, _ := args["patient_phone"].(string); phone == "" && caller.Phone != "" {
		args["patient_phone"] = caller.Phone
	}
	if name, _ := args["patient_name"].(string); name == "" && caller.DisplayName != "" {
		args["patient_name"] = caller.DisplayName
	}
}

// outcomeResult serializes an outcome for the agent. Failed outcomes
// still come back as text: the message field is the agent's line, not
// a protocol error.
func outcomeResult(outcome dispatch.Outcome) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return nil, fmt.Errorf("encoding outcome: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
