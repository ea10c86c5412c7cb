package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dentalvoice/frontdesk/internal/availability"
	"github.com/dentalvoice/frontdesk/internal/calendar"
	"github.com/dentalvoice/frontdesk/internal/logging"
)

// Service executes scheduling operations against a calendar gateway.
// It holds no mutable state; all methods are safe for concurrent use.
type Service struct {
	gateway Gateway
	calc    availability.Calculator
	loc     *time.Location
	logger  *slog.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a Service. A nil gateway is tolerated: every
// operation then reports that the calendar is unavailable. A nil
// logger falls back to slog.Default, a nil location to time.Local.
func NewService(gateway Gateway, calc availability.Calculator, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway: gateway,
		calc:    calc,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// CheckAvailability returns the free slots inside the requested window,
// optionally narrowed to a time-of-day preference.
func (s *Service) CheckAvailability(ctx context.Context, p CheckParams) Outcome {
	log := logging.WithOperation(s.logger, "appointment.check_availability")

	if !p.Complete() {
		log.Warn("identity incomplete, refusing to query calendar")
		return failure(ErrorMissingIdentity, msgNeedIdentityCheck)
	}
	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgCheckFailed)
	}

	now := s.now().In(s.loc)
	start := s.parseOrToday(p.StartDate, now)
	start = availability.ClampStart(start, now)

	window := availability.Window{Start: start}
	if p.EndDate != "" {
		if end, err := parseWhen(p.EndDate, s.loc); err == nil {
			window.End = end
		} else {
			log.Warn("unparseable end date, using default span", logging.Err(err))
		}
	}
	window = window.WithDefaultSpan(availability.DefaultCheckSpanDays)

	busy, err := s.gateway.QueryFreeBusy(ctx, window.Start, window.End)
	if err != nil {
		return s.gatewayFailure(log, err, msgCheckFailed)
	}

	slots := s.calc.FreeSlots(window, busy)
	slots = availability.FilterByPreference(slots, p.Preference)

	if len(slots) == 0 {
		log.Info("no availability in window",
			slog.Time("window_start", window.Start),
			slog.Time("window_end", window.End))
		no := false
		return Outcome{
			Success:         true,
			HasAvailability: &no,
			Message:         msgNoAvailability,
			Suggestion:      msgSuggestOtherDates,
		}
	}

	presented := availability.Present(slots, availability.MaxPresentedSlots)
	log.Info("availability computed",
		slog.Int("total_slots", len(slots)),
		slog.Int("showing_slots", len(presented)),
		logging.CallerHash(p.PatientPhone))

	yes := true
	return Outcome{
		Success:         true,
		HasAvailability: &yes,
		TotalSlots:      len(slots),
		ShowingSlots:    len(presented),
		Slots:           presented,
		Message:         fmt.Sprintf(msgSlotsFound, len(slots)),
	}
}

// NextSlots returns the first available slots from a date, looking
// two weeks ahead.
func (s *Service) NextSlots(ctx context.Context, p NextSlotsParams) Outcome {
	log := logging.WithOperation(s.logger, "appointment.next_slots")

	if !p.Complete() {
		log.Warn("identity incomplete, refusing to query calendar")
		return failure(ErrorMissingIdentity, msgNeedIdentityNext)
	}
	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgNextFailed)
	}

	count := p.Count
	if count < 1 {
		count = 5
	}
	if count > availability.MaxPresentedSlots {
		count = availability.MaxPresentedSlots
	}

	now := s.now().In(s.loc)
	start := s.parseOrToday(p.FromDate, now)
	start = availability.ClampStart(start, now)
	window := availability.Window{Start: start}.WithDefaultSpan(availability.DefaultNextSpanDays)

	busy, err := s.gateway.QueryFreeBusy(ctx, window.Start, window.End)
	if err != nil {
		return s.gatewayFailure(log, err, msgNextFailed)
	}

	slots := s.calc.FreeSlots(window, busy)
	if len(slots) == 0 {
		no := false
		return Outcome{
			Success:         true,
			HasAvailability: &no,
			Message:         msgNoneInTwoWeeks,
			Suggestion:      msgSuggestFurther,
		}
	}

	presented := availability.Present(slots, count)
	log.Info("next slots computed",
		slog.Int("count", len(presented)),
		logging.CallerHash(p.PatientPhone))

	yes := true
	return Outcome{
		Success:         true,
		HasAvailability: &yes,
		NextSlot:        &presented[0],
		Slots:           presented,
		Message:         fmt.Sprintf(msgNextSlotIs, presented[0].Readable),
	}
}

// Create books a new appointment. The event summary is
// "<type> - <patient name>" and the identity is recorded in the event
// description so the clinic can reach the patient.
func (s *Service) Create(ctx context.Context, p CreateParams) Outcome {
	log := logging.WithOperation(s.logger, "appointment.create")

	if !p.Complete() {
		log.Warn("identity incomplete, refusing to create")
		return failure(ErrorMissingIdentity, msgNeedIdentityCreate)
	}
	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgCreateFailed)
	}

	start, err := parseWhen(p.Start, s.loc)
	if err != nil {
		log.Warn("unparseable start datetime", logging.Err(err))
		return failure(ErrorBadRequest, msgBadDate)
	}
	end, err := parseWhen(p.End, s.loc)
	if err != nil {
		log.Warn("unparseable end datetime", logging.Err(err))
		return failure(ErrorBadRequest, msgBadDate)
	}

	kind := p.Type
	if kind == "" {
		kind = DefaultAppointmentType
	}

	input := calendar.EventInput{
		Summary:     fmt.Sprintf("%s - %s", kind, p.PatientName),
		Description: buildDescription(p.Notes, p.Identity),
		Start:       start,
		End:         end,
	}

	created, err := s.gateway.InsertEvent(ctx, input)
	if err != nil {
		return s.gatewayFailure(log, err, msgCreateFailed)
	}

	log.Info("appointment created",
		slog.String("event_id", created.ID),
		slog.Time("start", start),
		logging.CallerHash(p.PatientPhone))

	return Outcome{
		Success: true,
		EventID: created.ID,
		Message: fmt.Sprintf(msgCreated,
			availability.WeekdayName(start),
			start.Format("02/01/2006"),
			start.Format("15:04")),
	}
}

// Update reschedules or relabels an existing appointment. The event
// is fetched first, then only the provided fields are written. A
// missing event is reported as a soft failure: it may already have
// been canceled.
func (s *Service) Update(ctx context.Context, p UpdateParams) Outcome {
	log := logging.WithOperation(s.logger, "appointment.update")

	if !p.Complete() {
		log.Warn("identity incomplete, refusing to update")
		return failure(ErrorMissingIdentity, msgNeedIdentityUpdate)
	}
	if p.EventID == "" {
		return failure(ErrorBadRequest, msgNeedEventID)
	}
	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgUpdateFail)
	}

	var patch calendar.EventPatch
	if p.Start != "" {
		start, err := parseWhen(p.Start, s.loc)
		if err != nil {
			log.Warn("unparseable start datetime", logging.Err(err))
			return failure(ErrorBadRequest, msgBadDate)
		}
		patch.Start = start
	}
	if p.End != "" {
		end, err := parseWhen(p.End, s.loc)
		if err != nil {
			log.Warn("unparseable end datetime", logging.Err(err))
			return failure(ErrorBadRequest, msgBadDate)
		}
		patch.End = end
	}
	if p.Type != "" {
		patch.Summary = fmt.Sprintf("%s - %s", p.Type, p.PatientName)
	}
	if p.Notes != "" {
		patch.Description = buildDescription(p.Notes, p.Identity)
	}

	current, err := s.gateway.GetEvent(ctx, p.EventID)
	if err != nil {
		if calendar.IsNotFound(err) {
			log.Info("update target missing, treating as already canceled",
				slog.String("event_id", p.EventID))
			return failure(ErrorNotFound, msgUpdateGone)
		}
		return s.gatewayFailure(log, err, msgUpdateFail)
	}

	updated, err := s.gateway.PatchEvent(ctx, p.EventID, patch)
	if err != nil {
		// The event can vanish between the fetch and the patch.
		if calendar.IsNotFound(err) {
			log.Info("update target missing, treating as already canceled",
				slog.String("event_id", p.EventID))
			return failure(ErrorNotFound, msgUpdateGone)
		}
		return s.gatewayFailure(log, err, msgUpdateFail)
	}

	log.Info("appointment updated",
		slog.String("event_id", updated.ID),
		slog.Time("previous_start", current.Start),
		logging.CallerHash(p.PatientPhone))

	return Outcome{Success: true, EventID: updated.ID, Message: msgUpdated}
}

// Cancel deletes an appointment. Canceling twice is tolerated: the
// second attempt soft-fails with an "may already be canceled" message.
func (s *Service) Cancel(ctx context.Context, p CancelParams) Outcome {
	log := logging.WithOperation(s.logger, "appointment.cancel")

	if !p.Complete() {
		log.Warn("identity incomplete, refusing to cancel")
		return failure(ErrorMissingIdentity, msgNeedIdentityCancel)
	}
	if p.EventID == "" {
		return failure(ErrorBadRequest, msgNeedEventID)
	}
	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgCancelFail)
	}

	if err := s.gateway.DeleteEvent(ctx, p.EventID); err != nil {
		if calendar.IsNotFound(err) {
			log.Info("cancel target missing, treating as already canceled",
				slog.String("event_id", p.EventID))
			return failure(ErrorNotFound, msgCancelGone)
		}
		return s.gatewayFailure(log, err, msgCancelFail)
	}

	log.Info("appointment canceled",
		slog.String("event_id", p.EventID),
		logging.CallerHash(p.PatientPhone))

	return Outcome{Success: true, EventID: p.EventID, Message: msgCanceled}
}

// Upcoming lists the calendar's appointments for the next daysAhead
// days. Used by the caller-identification flow to greet returning
// patients with their booked appointments.
func (s *Service) Upcoming(ctx context.Context, daysAhead int) Outcome {
	log := logging.WithOperation(s.logger, "appointment.upcoming")

	if s.gateway == nil {
		return failure(ErrorGatewayUnavailable, msgListFailed)
	}
	if daysAhead < 1 {
		daysAhead = availability.DefaultCheckSpanDays
	}

	events, err := s.gateway.ListUpcoming(ctx, daysAhead)
	if err != nil {
		return s.gatewayFailure(log, err, msgListFailed)
	}

	if len(events) == 0 {
		return Outcome{Success: true, Message: msgUpcomingNone}
	}
	return Outcome{
		Success:      true,
		Appointments: events,
		Message:      fmt.Sprintf(msgUpcoming, len(events)),
	}
}

// gatewayFailure logs a calendar error and converts it to an outcome.
func (s *Service) gatewayFailure(log *slog.Logger, err error, message string) Outcome {
	if errors.Is(err, calendar.ErrNotConfigured) {
		log.Warn("calendar gateway not configured")
		return failure(ErrorGatewayUnavailable, message)
	}
	log.Error("calendar gateway call failed", logging.Err(err))
	return failure(ErrorGateway, message)
}

// parseOrToday resolves a loose date string, falling back to today's
// midnight on empty or unparseable input.
func (s *Service) parseOrToday(raw string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if raw == "" {
		return today
	}
	t, err := parseWhen(raw, s.loc)
	if err != nil {
		s.logger.Warn("unparseable date, using today",
			slog.String("input", raw), logging.Err(err))
		return today
	}
	return t
}

// parseWhen accepts RFC3339, a zoneless datetime, or a bare date.
// Zoneless inputs are interpreted in loc.
func parseWhen(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}

// buildDescription appends the patient's identity to the free-form
// notes so the event is self-contained for clinic staff.
func buildDescription(notes string, id Identity) string {
	var b strings.Builder
	b.WriteString(notes)
	b.WriteString("\nΌνομα: ")
	b.WriteString(id.PatientName)
	b.WriteString("\nΤηλέφωνο: ")
	b.WriteString(id.PatientPhone)
	return strings.TrimSpace(b.String())
}
