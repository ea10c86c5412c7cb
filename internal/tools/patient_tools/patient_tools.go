package patient_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dentalvoice/frontdesk/internal/instrumentation"
	"github.com/dentalvoice/frontdesk/internal/phone"
	"github.com/dentalvoice/frontdesk/internal/profile"
	"github.com/dentalvoice/frontdesk/internal/server"
	"github.com/dentalvoice/frontdesk/internal/tools/common"
)

// RegisterPatientTools registers caller identification and patient
// registration tools with the MCP server.
func RegisterPatientTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	identifyTool := mcp.NewTool("identify_caller",
		mcp.WithDescription("Look up the caller by phone number. Returns the stored profile for returning patients, or known=false for first-time callers. Binds the identity to this session."),
		mcp.WithString("caller_phone",
			mcp.Required(),
			mcp.Description("The caller's phone number, in any common Greek format"),
		),
	)
	s.AddTool(identifyTool, common.InstrumentedToolHandlerWithService(
		"identify_caller", instrumentation.ServiceProfile, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleIdentifyCaller(ctx, request, sc)
		}))

	registerTool := mcp.NewTool("register_patient",
		mcp.WithDescription("Register a first-time caller as a patient. Fails if the phone number already has a profile."),
		mcp.WithString("patient_phone",
			mcp.Required(),
			mcp.Description("The patient's phone number"),
		),
		mcp.WithString("patient_name",
			mcp.Required(),
			mcp.Description("The patient's full name"),
		),
		mcp.WithString("preferred_name",
			mcp.Description("How the patient likes to be addressed. Defaults to the first given name."),
		),
	)
	s.AddTool(registerTool, common.InstrumentedToolHandlerWithService(
		"register_patient", instrumentation.ServiceProfile, instrumentation.OperationInsert, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRegisterPatient(ctx, request, sc)
		}))

	return nil
}

// identifyResponse is the identify_caller payload.
type identifyResponse struct {
	Known   bool             `json:"known"`
	Profile *profile.Profile `json:"profile,omitempty"`
}

func handleIdentifyCaller(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rawPhone, _ := args["caller_phone"].(string)
	if rawPhone == "" {
		return mcp.NewToolResultError("caller_phone is required"), nil
	}

	p, isNew, err := sc.Identifier().Identify(ctx, rawPhone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to identify caller: %v", err)), nil
	}

	identity := server.CallerIdentity{}
	if p != nil {
		identity = server.CallerIdentity{
			Phone:       p.PhoneNumber,
			UserID:      p.UserID,
			DisplayName: p.Name,
		}
	} else if normalized, nerr := phone.Normalize(rawPhone); nerr == nil {
		identity = server.CallerIdentity{Phone: normalized}
	}
	bindSession(ctx, sc, identity)

	return jsonResult(identifyResponse{Known: !isNew, Profile: p})
}

func handleRegisterPatient(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rawPhone, _ := args["patient_phone"].(string)
	if rawPhone == "" {
		return mcp.NewToolResultError("patient_phone is required"), nil
	}
	name, _ := args["patient_name"].(string)
	if name == "" {
		return mcp.NewToolResultError("patient_name is required"), nil
	}
	preferred, _ := args["preferred_name"].(string)

	p, err := sc.Identifier().Register(ctx, rawPhone, name, preferred)
	switch {
	case errors.Is(err, profile.ErrExists):
		return mcp.NewToolResultError("A patient is already registered with this phone number. Use identify_caller instead."), nil
	case errors.Is(err, profile.ErrUnavailable):
		return mcp.NewToolResultError("Patient storage is not available; the caller can still book appointments."), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to register patient: %v", err)), nil
	}

	bindSession(ctx, sc, server.CallerIdentity{
		Phone:       p.PhoneNumber,
		UserID:      p.UserID,
		DisplayName: p.Name,
	})

	return jsonResult(p)
}

// bindSession attaches the identity to the MCP session, when there is
// one and the identity carries a phone number.
func bindSession(ctx context.Context, sc *server.ServerContext, identity server.CallerIdentity) {
	if identity.Phone == "" {
		return
	}
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		sc.Sessions().SetCaller(session.SessionID(), identity)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
