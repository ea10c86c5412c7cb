// Package server provides the MCP server context, per-conversation
// session tracking, health probes and the dedicated metrics server for
// the frontdesk application.
//
// # Key Components
//
// ServerContext wires the scheduling stack together: the appointment
// service, the dispatcher that runs scheduling calls concurrently with
// the conversation, and the Redis-backed patient profile store. Both
// the calendar and the profile store may be absent; the server then
// runs degraded rather than refusing to start.
//
// SessionManager tracks the identified caller per MCP session, so a
// patient identified at the start of a call does not repeat their
// details for every tool invocation.
//
// HealthChecker exposes /healthz and /readyz for Kubernetes probes,
// and MetricsServer serves Prometheus metrics on a dedicated port,
// isolated from application traffic.
package server
