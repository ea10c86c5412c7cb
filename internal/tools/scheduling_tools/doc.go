// Package scheduling_tools exposes the clinic's scheduling operations
// as MCP tools for the voice agent.
//
// The five function tools (check_availability, get_next_slots,
// create_appointment, update_appointment, cancel_appointment) route
// through the dispatcher, so the spoken acknowledgement is emitted
// before the calendar round-trip completes. Every tool returns the
// operation outcome as JSON whose message field is directly speakable
// in Greek.
package scheduling_tools
