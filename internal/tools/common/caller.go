package common

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dentalvoice/frontdesk/internal/server"
)

// CallerPhone resolves the caller's phone number for a tool request.
//
// Priority order:
//  1. The caller identified for this MCP session (set by identify_caller)
//  2. Explicit "patient_phone" argument in the request
//
// Returns an empty string when neither is available; handlers then ask
// the caller for their details.
func CallerPhone(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) string {
	if sc != nil {
		if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
			if caller, ok := sc.Sessions().Caller(session.SessionID()); ok && caller.Phone != "" {
				return caller.Phone
			}
		}
	}

	if phone, ok := args["patient_phone"].(string); ok {
		return phone
	}
	return ""
}
