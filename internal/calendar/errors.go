package calendar

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrNotConfigured is returned when the gateway has no credentials.
// Callers treat this as graceful degradation: scheduling features are
// reported unavailable instead of crashing the conversation.
var ErrNotConfigured = errors.New("calendar gateway not configured")

// IsNotFound reports whether err indicates the target event does not
// exist on the calendar. Google reports 404 for unknown IDs and 410
// for events that were already deleted; both mean the appointment is
// gone, most likely already canceled.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone
	}
	return false
}
