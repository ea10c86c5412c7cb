package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dentalvoice/frontdesk/internal/logging"
	"github.com/dentalvoice/frontdesk/internal/phone"
)

// Identifier matches incoming callers to stored profiles and registers
// new patients.
type Identifier struct {
	store  *Store
	logger *slog.Logger
}

// NewIdentifier creates an Identifier over the given store.
func NewIdentifier(store *Store, logger *slog.Logger) *Identifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Identifier{store: store, logger: logger}
}

// Identify looks up the caller by phone number, accepting any common
// local format. It returns the profile when the caller is known, or
// (nil, true, nil) for a well-formed number with no profile yet. A
// disabled store also reports the caller as new, so the conversation
// can proceed without Redis.
func (i *Identifier) Identify(ctx context.Context, rawPhone string) (p *Profile, isNew bool, err error) {
	log := logging.WithOperation(i.logger, "profile.identify")

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		log.Warn("unusable caller number", logging.Err(err))
		return nil, false, fmt.Errorf("normalizing phone number: %w", err)
	}

	p, err = i.store.GetByPhone(ctx, normalized)
	switch {
	case err == nil:
		log.Info("caller identified",
			slog.String("user_id", p.UserID),
			logging.CallerHash(normalized))
		return p, false, nil
	case errors.Is(err, ErrNotFound):
		log.Info("caller unknown", logging.CallerHash(normalized))
		return nil, true, nil
	case errors.Is(err, ErrUnavailable):
		log.Debug("profile store disabled, treating caller as new")
		return nil, true, nil
	default:
		return nil, false, err
	}
}

// Register creates a profile for a new patient. The phone number is
// normalized first; registration fails if the number already has a
// profile.
func (i *Identifier) Register(ctx context.Context, rawPhone, name, preferredName string) (*Profile, error) {
	log := logging.WithOperation(i.logger, "profile.register")

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("normalizing phone number: %w", err)
	}

	p := NewProfile(normalized, name, preferredName)
	if err := i.store.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("patient registered",
		slog.String("user_id", p.UserID),
		logging.CallerHash(normalized))
	return p, nil
}

// RecordCall stores a completed call against the patient's history.
func (i *Identifier) RecordCall(ctx context.Context, rec *CallRecord) error {
	return i.store.SaveCallRecord(ctx, rec)
}
