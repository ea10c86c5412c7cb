package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dentalvoice/frontdesk/internal/appointment"
	"github.com/dentalvoice/frontdesk/internal/instrumentation"
	"github.com/dentalvoice/frontdesk/internal/logging"
)

// Call states, logged as each request moves through its lifecycle.
const (
	stateReceived  = "received"
	stateAckSent   = "ack_sent"
	stateExecuting = "executing"
	stateCompleted = "completed"
)

// Config assembles a Dispatcher.
type Config struct {
	// Service executes the scheduling operations. Required.
	Service *appointment.Service

	// Speech receives acknowledgement utterances. Optional; nil
	// disables spoken feedback.
	Speech SpeechSink

	// Results receives one Result per Dispatch call. Optional for
	// transports that only use Call.
	Results ResultSink

	// AckMessages overrides the per-function acknowledgement lines.
	// Nil selects DefaultAckMessages. Functions absent from the map
	// fall back to DefaultAckUtterance; mapping a function to the
	// empty string silences it.
	AckMessages map[string]string

	// Metrics records function-call and utterance metrics. Optional.
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Dispatcher runs scheduling function calls concurrently with the
// conversation. Safe for concurrent use.
type Dispatcher struct {
	svc     *appointment.Service
	speech  SpeechSink
	results ResultSink
	ack     map[string]string
	metrics *instrumentation.Metrics
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher from cfg.
func NewDispatcher(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ack := cfg.AckMessages
	if ack == nil {
		ack = DefaultAckMessages()
	}
	return &Dispatcher{
		svc:     cfg.Service,
		speech:  cfg.Speech,
		results: cfg.Results,
		ack:     ack,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// Dispatch acknowledges the request and starts its handler in the
// background. The Result goes to the configured result sink. Dispatch
// returns as soon as the acknowledgement has been spoken; it never
// waits for the calendar.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) {
	d.dispatch(ctx, req, func(ctx context.Context, r Result) {
		if d.results != nil {
			d.results.Deliver(ctx, r)
		}
	})
}

// Call dispatches the request and blocks until its Result arrives.
// The acknowledgement still flows to the speech sink concurrently, so
// synchronous transports (MCP tools) keep the spoken feedback path.
func (d *Dispatcher) Call(ctx context.Context, req Request) Result {
	ch := make(chan Result, 1)
	d.dispatch(ctx, req, func(_ context.Context, r Result) {
		ch <- r
	})
	return <-ch
}

// Wait blocks until every in-flight handler has delivered its result.
// Used on shutdown so background calendar writes are never abandoned
// mid-flight.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// dispatch is the single execution path: speak the acknowledgement,
// then run the handler on a cancellation-free context and deliver the
// result exactly once.
func (d *Dispatcher) dispatch(ctx context.Context, req Request, deliver func(context.Context, Result)) {
	log := d.logger.With(
		logging.CallID(req.CallID()),
		logging.Function(req.Function()))

	log.Debug("function call", logging.Status(stateReceived))

	if d.speech != nil {
		utterance, ok := d.ack[req.Function()]
		if !ok {
			utterance = DefaultAckUtterance
		}
		if utterance != "" {
			d.speech.Speak(ctx, utterance)
			if d.metrics != nil {
				d.metrics.RecordFeedbackUtterance(ctx, req.Function())
			}
			log.Debug("acknowledgement spoken", logging.Status(stateAckSent))
		}
	}

	// A user interrupting the agent cancels ctx, but the calendar
	// operation must run to completion regardless.
	bg := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		log.Debug("handler started", logging.Status(stateExecuting))
		started := time.Now()

		outcome := d.execute(bg, req)

		status := logging.StatusSuccess
		if !outcome.Success {
			status = logging.StatusError
		}
		if d.metrics != nil {
			d.metrics.RecordFunctionCall(bg, req.Function(), status, time.Since(started))
		}
		log.Info("function call completed",
			logging.Status(stateCompleted),
			slog.Bool("success", outcome.Success),
			slog.Duration(logging.KeyDuration, time.Since(started)))

		deliver(bg, Result{
			CallID:   req.CallID(),
			Function: req.Function(),
			Outcome:  outcome,
		})
	}()
}

// execute maps the closed request set onto the service.
func (d *Dispatcher) execute(ctx context.Context, req Request) Outcome {
	switch r := req.(type) {
	case CheckAvailabilityRequest:
		return d.svc.CheckAvailability(ctx, r.Params)
	case NextSlotsRequest:
		return d.svc.NextSlots(ctx, r.Params)
	case CreateRequest:
		return d.svc.Create(ctx, r.Params)
	case UpdateRequest:
		return d.svc.Update(ctx, r.Params)
	case CancelRequest:
		return d.svc.Cancel(ctx, r.Params)
	}
	// Unreachable: the Request set is closed.
	return Outcome{Success: false, Error: appointment.ErrorBadRequest, Message: DefaultAckUtterance}
}
