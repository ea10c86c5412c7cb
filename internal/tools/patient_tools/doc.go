// Package patient_tools exposes caller identification and patient
// registration as MCP tools.
//
// identify_caller matches the incoming phone number to a stored
// profile and binds the identity to the MCP session, so subsequent
// scheduling calls no longer need the name and number repeated.
// register_patient creates a profile for first-time callers.
package patient_tools
