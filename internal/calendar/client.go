package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Reminder offsets applied to every appointment. Fixed policy: one
// popup a day before, one an hour before.
const (
	reminderDayBeforeMinutes  = 24 * 60
	reminderHourBeforeMinutes = 60
)

// Config holds the settings needed to reach the clinic calendar.
type Config struct {
	// CredentialsPath points to a service-account JSON key file.
	// Used when CredentialsJSON is empty.
	CredentialsPath string

	// CredentialsJSON is the raw service-account key. Takes
	// precedence over CredentialsPath.
	CredentialsJSON []byte

	// CalendarID identifies the clinic calendar ("primary" or a
	// shared calendar address).
	CalendarID string

	// TimeZone is the deployment timezone, e.g. "Europe/Athens".
	TimeZone string
}

// Client wraps the Google Calendar service for a single clinic
// calendar. It is safe for concurrent use; the underlying service
// handle is created once at startup.
type Client struct {
	svc        *calendar.Service
	calendarID string
	timeZone   string
	loc        *time.Location
}

// NewClient creates a Calendar client authenticated with a service
// account. Returns ErrNotConfigured when no credentials are provided
// so callers can degrade gracefully.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	data := cfg.CredentialsJSON
	if len(data) == 0 {
		if cfg.CredentialsPath == "" {
			return nil, ErrNotConfigured
		}
		var err error
		data, err = os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
	}

	jwtConf, err := google.JWTConfigFromJSON(data, calendar.CalendarScope, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(jwtConf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	timeZone := cfg.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timeZone, err)
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		timeZone:   timeZone,
		loc:        loc,
	}, nil
}

// CalendarID returns the calendar this client operates on.
func (c *Client) CalendarID() string {
	return c.calendarID
}

// Location returns the deployment location busy intervals and event
// times are normalized into.
func (c *Client) Location() *time.Location {
	return c.loc
}

// QueryFreeBusy returns the busy intervals on the clinic calendar
// within [timeMin, timeMax], normalized into the client's location.
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time) ([]BusyInterval, error) {
	query := &calendar.FreeBusyRequest{
		TimeMin:  timeMin.Format(time.RFC3339),
		TimeMax:  timeMax.Format(time.RFC3339),
		TimeZone: c.timeZone,
		Items:    []*calendar.FreeBusyRequestItem{{Id: c.calendarID}},
	}

	result, err := c.svc.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	cal, ok := result.Calendars[c.calendarID]
	if !ok {
		return nil, nil
	}

	var busy []BusyInterval
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			continue
		}
		busy = append(busy, BusyInterval{Start: start.In(c.loc), End: end.In(c.loc)})
	}

	return busy, nil
}

// InsertEvent creates a new appointment event. The two reminder
// overrides are always applied regardless of input.
func (c *Client) InsertEvent(ctx context.Context, input EventInput) (*EventSummary, error) {
	timeZone := input.TimeZone
	if timeZone == "" {
		timeZone = c.timeZone
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: timeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderDayBeforeMinutes},
				{Method: "popup", Minutes: reminderHourBeforeMinutes},
			},
			// UseDefault is a zero value and must be sent explicitly.
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created, c.loc)
	return &summary, nil
}

// GetEvent retrieves a specific event by ID.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	summary := toEventSummary(event, c.loc)
	return &summary, nil
}

// PatchEvent applies a merge-patch to an existing event: only the
// fields set on patch are written, everything else is left untouched.
func (c *Client) PatchEvent(ctx context.Context, eventID string, patch EventPatch) (*EventSummary, error) {
	timeZone := patch.TimeZone
	if timeZone == "" {
		timeZone = c.timeZone
	}

	event := &calendar.Event{}
	if patch.Summary != "" {
		event.Summary = patch.Summary
	}
	if patch.Description != "" {
		event.Description = patch.Description
	}
	if !patch.Start.IsZero() {
		event.Start = &calendar.EventDateTime{
			DateTime: patch.Start.Format(time.RFC3339),
			TimeZone: timeZone,
		}
	}
	if !patch.End.IsZero() {
		event.End = &calendar.EventDateTime{
			DateTime: patch.End.Format(time.RFC3339),
			TimeZone: timeZone,
		}
	}

	updated, err := c.svc.Events.Patch(c.calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to patch event: %w", err)
	}

	summary := toEventSummary(updated, c.loc)
	return &summary, nil
}

// DeleteEvent deletes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// ListUpcoming lists appointments on the clinic calendar for the next
// daysAhead days, in start-time order.
func (c *Client) ListUpcoming(ctx context.Context, daysAhead int) ([]EventSummary, error) {
	now := time.Now().In(c.loc)

	events, err := c.svc.Events.List(c.calendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, daysAhead).Format(time.RFC3339)).
		MaxResults(50).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event, c.loc))
	}

	return summaries, nil
}
