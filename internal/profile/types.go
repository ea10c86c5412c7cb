package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// DefaultTimezone is the clinic's timezone, recorded on new profiles.
const DefaultTimezone = "Europe/Athens"

// Profile is a registered patient.
type Profile struct {
	UserID        string    `json:"user_id"`
	PhoneNumber   string    `json:"phone_number"`
	Name          string    `json:"name"`
	PreferredName string    `json:"preferred_name,omitempty"`
	Registered    time.Time `json:"registration_date"`
	Status        string    `json:"status"`
	Timezone      string    `json:"timezone"`

	// Greeting overrides the agent's default salutation for this
	// patient, if set.
	Greeting string `json:"preferred_greeting,omitempty"`
}

// NewProfile creates an active profile for a normalized phone number.
// The preferred name defaults to the first given name.
func NewProfile(phoneNumber, name, preferredName string) *Profile {
	if preferredName == "" {
		if parts := strings.Fields(name); len(parts) > 0 {
			preferredName = parts[0]
		}
	}
	return &Profile{
		UserID:        uuid.NewString(),
		PhoneNumber:   phoneNumber,
		Name:          name,
		PreferredName: preferredName,
		Registered:    time.Now().UTC(),
		Status:        StatusActive,
		Timezone:      DefaultTimezone,
	}
}

// CallRecord is one completed conversation with a patient.
type CallRecord struct {
	CallID    string    `json:"call_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int       `json:"duration_seconds"`
	Summary   string    `json:"summary,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
}

// NewCallRecord creates a call record stamped with the current time.
func NewCallRecord(userID string) *CallRecord {
	return &CallRecord{
		CallID:    uuid.NewString(),
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}
