package dispatch

import (
	"context"

	"github.com/dentalvoice/frontdesk/internal/appointment"
)

// SpeechSink receives acknowledgement utterances for the agent to
// speak immediately. Implementations must not block on slow I/O; the
// dispatcher calls Speak synchronously before starting the handler.
type SpeechSink interface {
	Speak(ctx context.Context, utterance string)
}

// SpeechFunc adapts a function to the SpeechSink interface.
type SpeechFunc func(ctx context.Context, utterance string)

func (f SpeechFunc) Speak(ctx context.Context, utterance string) { f(ctx, utterance) }

// ResultSink receives exactly one Result per dispatched request.
type ResultSink interface {
	Deliver(ctx context.Context, result Result)
}

// ResultFunc adapts a function to the ResultSink interface.
type ResultFunc func(ctx context.Context, result Result)

func (f ResultFunc) Deliver(ctx context.Context, result Result) { f(ctx, result) }

// Result is the terminal report of a dispatched call.
type Result struct {
	CallID   string
	Function string
	Outcome  Outcome
}

// Outcome aliases the appointment outcome so transports only need
// this package to consume results.
type Outcome = appointment.Outcome
