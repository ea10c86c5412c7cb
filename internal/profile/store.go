package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dentalvoice/frontdesk/internal/logging"
)

// Sentinel errors returned by the store.
var (
	// ErrUnavailable reports that no Redis backend is configured.
	ErrUnavailable = errors.New("profile store not configured")

	// ErrNotFound reports that no profile or record matches the key.
	ErrNotFound = errors.New("profile not found")

	// ErrExists reports a registration attempt for a phone number
	// that already has a profile.
	ErrExists = errors.New("profile already exists for phone number")
)

// Key layout in Redis. The phone index maps a normalized E.164 number
// to the owning user ID.
const (
	keyPrefix    = "frontdesk"
	keyUsersSet  = keyPrefix + ":users"
	callsPerUser = 10
)

func userKey(userID string) string { return fmt.Sprintf("%s:user:%s", keyPrefix, userID) }
func phoneKey(phone string) string { return fmt.Sprintf("%s:phone:%s", keyPrefix, phone) }
func callKey(userID, callID string) string {
	return fmt.Sprintf("%s:call:%s:%s", keyPrefix, userID, callID)
}
func callIndexKey(userID string) string { return fmt.Sprintf("%s:user:%s:calls", keyPrefix, userID) }

// Commands is the slice of the go-redis API the store depends on.
// *redis.Client satisfies it; tests substitute an in-memory fake.
type Commands interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SCard(ctx context.Context, key string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Store persists profiles and call history. Safe for concurrent use.
type Store struct {
	rdb    Commands
	logger *slog.Logger
}

// NewStore creates a Store on the given Redis commands. A nil backend
// yields a disabled store whose operations return ErrUnavailable.
func NewStore(rdb Commands, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{rdb: rdb, logger: logger}
}

// Enabled reports whether a Redis backend is configured.
func (s *Store) Enabled() bool { return s.rdb != nil }

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if s.rdb == nil {
		return ErrUnavailable
	}
	return s.rdb.Ping(ctx).Err()
}

// GetByPhone looks up a profile by its normalized phone number.
func (s *Store) GetByPhone(ctx context.Context, phoneNumber string) (*Profile, error) {
	if s.rdb == nil {
		return nil, ErrUnavailable
	}

	userID, err := s.rdb.Get(ctx, phoneKey(phoneNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up phone index: %w", err)
	}
	return s.Get(ctx, userID)
}

// Get fetches a profile by user ID.
func (s *Store) Get(ctx context.Context, userID string) (*Profile, error) {
	if s.rdb == nil {
		return nil, ErrUnavailable
	}

	raw, err := s.rdb.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile %s: %w", userID, err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", userID, err)
	}
	return &p, nil
}

// Create registers a new profile and its phone index entry. The phone
// number must not already be registered.
func (s *Store) Create(ctx context.Context, p *Profile) error {
	if s.rdb == nil {
		return ErrUnavailable
	}

	_, err := s.rdb.Get(ctx, phoneKey(p.PhoneNumber)).Result()
	switch {
	case err == nil:
		return ErrExists
	case !errors.Is(err, redis.Nil):
		return fmt.Errorf("checking phone index: %w", err)
	}

	if err := s.write(ctx, p); err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, phoneKey(p.PhoneNumber), p.UserID, 0).Err(); err != nil {
		return fmt.Errorf("writing phone index: %w", err)
	}
	if err := s.rdb.SAdd(ctx, keyUsersSet, p.UserID).Err(); err != nil {
		return fmt.Errorf("registering user ID: %w", err)
	}

	s.logger.Info("profile created",
		slog.String("user_id", p.UserID),
		logging.CallerHash(p.PhoneNumber))
	return nil
}

// Update overwrites an existing profile.
func (s *Store) Update(ctx context.Context, p *Profile) error {
	if s.rdb == nil {
		return ErrUnavailable
	}
	if err := s.write(ctx, p); err != nil {
		return err
	}
	s.logger.Info("profile updated", slog.String("user_id", p.UserID))
	return nil
}

// Delete removes a profile, its phone index entry and its user-set
// membership. Call history is retained.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return ErrUnavailable
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.rdb.Del(ctx, userKey(userID), phoneKey(p.PhoneNumber)).Err(); err != nil {
		return fmt.Errorf("deleting profile %s: %w", userID, err)
	}
	if err := s.rdb.SRem(ctx, keyUsersSet, userID).Err(); err != nil {
		return fmt.Errorf("unregistering user ID: %w", err)
	}

	s.logger.Info("profile deleted", slog.String("user_id", userID))
	return nil
}

// SaveCallRecord appends a call record to the patient's history.
func (s *Store) SaveCallRecord(ctx context.Context, rec *CallRecord) error {
	if s.rdb == nil {
		return ErrUnavailable
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding call record: %w", err)
	}
	if err := s.rdb.Set(ctx, callKey(rec.UserID, rec.CallID), raw, 0).Err(); err != nil {
		return fmt.Errorf("writing call record: %w", err)
	}
	err = s.rdb.ZAdd(ctx, callIndexKey(rec.UserID), redis.Z{
		Score:  float64(rec.Timestamp.Unix()),
		Member: rec.CallID,
	}).Err()
	if err != nil {
		return fmt.Errorf("indexing call record: %w", err)
	}

	s.logger.Info("call record saved",
		slog.String("user_id", rec.UserID),
		logging.CallID(rec.CallID))
	return nil
}

// RecentCalls returns up to limit call records, most recent first.
func (s *Store) RecentCalls(ctx context.Context, userID string, limit int) ([]CallRecord, error) {
	if s.rdb == nil {
		return nil, ErrUnavailable
	}
	if limit < 1 {
		limit = callsPerUser
	}

	callIDs, err := s.rdb.ZRevRange(ctx, callIndexKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing call history: %w", err)
	}

	calls := make([]CallRecord, 0, len(callIDs))
	for _, callID := range callIDs {
		raw, err := s.rdb.Get(ctx, callKey(userID, callID)).Result()
		if errors.Is(err, redis.Nil) {
			// Index entry without a record: skip rather than fail
			// the whole history.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching call record %s: %w", callID, err)
		}
		var rec CallRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding call record %s: %w", callID, err)
		}
		calls = append(calls, rec)
	}
	return calls, nil
}

// TotalUsers returns the number of registered profiles.
func (s *Store) TotalUsers(ctx context.Context) (int64, error) {
	if s.rdb == nil {
		return 0, ErrUnavailable
	}
	return s.rdb.SCard(ctx, keyUsersSet).Result()
}

func (s *Store) write(ctx context.Context, p *Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.rdb.Set(ctx, userKey(p.UserID), raw, 0).Err(); err != nil {
		return fmt.Errorf("writing profile %s: %w", p.UserID, err)
	}
	return nil
}
