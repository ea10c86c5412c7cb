// Package dispatch routes function-call requests from the
// conversational agent to the appointment service.
//
// A dispatched call immediately emits a short spoken acknowledgement
// to the speech sink, then executes the scheduling operation in its
// own goroutine and delivers exactly one Result to the result sink.
// Acknowledgement and result are concurrent: callers must not assume
// an ordering between them. Execution runs on a context detached from
// the caller's cancellation, so a user interrupting the agent
// mid-sentence never aborts an in-flight calendar operation.
package dispatch
