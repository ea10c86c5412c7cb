// Package appointment implements the scheduling operations behind the
// conversational agent: availability checks, next-slot lookup, and
// appointment create/update/cancel against a calendar gateway.
//
// Operations never return Go errors to their caller. Every failure is
// converted into an Outcome value carrying a machine-readable error
// kind and a localized message the agent can speak verbatim. Identity
// (patient name and phone) is validated before any gateway call.
package appointment
