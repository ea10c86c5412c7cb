package profile

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_Defaults(t *testing.T) {
	p := NewProfile("+306912345678", "Μαρία Παπαδοπούλου", "")

	_, err := uuid.Parse(p.UserID)
	require.NoError(t, err, "user ID must be a UUID")

	assert.Equal(t, "Μαρία", p.PreferredName, "preferred name defaults to the first given name")
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, DefaultTimezone, p.Timezone)
	assert.False(t, p.Registered.IsZero())
}

func TestNewProfile_ExplicitPreferredName(t *testing.T) {
	p := NewProfile("+306912345678", "Μαρία Παπαδοπούλου", "κυρία Παπαδοπούλου")
	assert.Equal(t, "κυρία Παπαδοπούλου", p.PreferredName)
}

func TestNewProfile_EmptyName(t *testing.T) {
	p := NewProfile("+306912345678", "", "")
	assert.Empty(t, p.PreferredName)
}

// The stored JSON field names are part of the Redis layout; renaming
// them would orphan existing profiles.
func TestProfile_StorageFieldNames(t *testing.T) {
	raw, err := json.Marshal(NewProfile("+306912345678", "Μαρία Παπαδοπούλου", ""))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{"user_id", "phone_number", "name", "preferred_name", "registration_date", "status", "timezone"} {
		assert.Contains(t, fields, key)
	}
}

func TestNewCallRecord(t *testing.T) {
	rec := NewCallRecord("user-1")

	_, err := uuid.Parse(rec.CallID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.False(t, rec.Timestamp.IsZero())
}
