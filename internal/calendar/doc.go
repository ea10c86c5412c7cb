// Package calendar provides the gateway to the clinic's Google
// Calendar, which is the single source of truth for appointments.
//
// The gateway exposes a free/busy query and event create, read,
// merge-patch and delete operations. It holds no cache and no state
// beyond the authenticated service handle: every call re-reads the
// remote calendar, so two concurrent availability checks may briefly
// disagree and the calendar, not this process, is authoritative.
//
// Authentication uses a service account (JWT) rather than a user
// OAuth flow; the clinic's calendar is shared with the service
// account once at deployment time.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx, calendar.Config{
//	    CredentialsPath: "/etc/frontdesk/service-account.json",
//	    CalendarID:      "clinic@example.com",
//	    TimeZone:        "Europe/Athens",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	busy, err := client.QueryFreeBusy(ctx, time.Now(), time.Now().AddDate(0, 0, 7))
package calendar
