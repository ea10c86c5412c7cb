package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dentalvoice/frontdesk/internal/availability"
)

// Defaults applied when the environment leaves a setting empty.
const (
	DefaultTimezone    = "Europe/Athens"
	DefaultCalendarID  = "primary"
	DefaultOpenHour    = 9
	DefaultCloseHour   = 18
	DefaultSlotMinutes = 30
	DefaultListenAddr  = ":8080"
	DefaultMetricsAddr = ":9090"
)

// Config is the assembled runtime configuration.
type Config struct {
	Calendar CalendarConfig
	Clinic   ClinicConfig
	Redis    RedisConfig

	// ListenAddr is the streamable-HTTP transport address.
	ListenAddr string

	// MetricsAddr is the Prometheus/health endpoint address.
	MetricsAddr string
}

// CalendarConfig selects the clinic calendar and its credentials.
type CalendarConfig struct {
	// CredentialsPath points to a service-account JSON key file.
	CredentialsPath string

	// CredentialsJSON is the raw key, taking precedence over the
	// path. Useful in container deployments that inject secrets as
	// environment variables.
	CredentialsJSON string

	CalendarID string
	Timezone   string
}

// Configured reports whether any credentials were provided.
func (c CalendarConfig) Configured() bool {
	return c.CredentialsPath != "" || c.CredentialsJSON != ""
}

// ClinicConfig is the bookable schedule.
type ClinicConfig struct {
	OpenHour     int
	CloseHour    int
	SlotDuration time.Duration

	// FeedbackFunctions restricts which scheduling functions get a
	// spoken acknowledgement. Empty means all of them.
	FeedbackFunctions []string
}

// WorkingHours converts the schedule for the availability calculator.
func (c ClinicConfig) WorkingHours() availability.WorkingHours {
	return availability.WorkingHours{Open: c.OpenHour, Close: c.CloseHour}
}

// RedisConfig locates the profile store.
type RedisConfig struct {
	// URL is a redis:// connection URL. Takes precedence over the
	// discrete fields.
	URL string

	Addr     string
	Password string
	DB       int
}

// Configured reports whether a Redis backend was provided.
func (c RedisConfig) Configured() bool {
	return c.URL != "" || c.Addr != ""
}

// Options resolves the go-redis client options, or nil when Redis is
// not configured.
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}
	if c.Addr == "" {
		return nil, nil
	}
	return &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// Load reads configuration from the environment. When envFile names an
// existing file its values are loaded first without overriding
// variables already set in the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}
	return FromEnv()
}

// FromEnv assembles a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Calendar: CalendarConfig{
			CredentialsPath: envOr("GOOGLE_APPLICATION_CREDENTIALS", ""),
			CredentialsJSON: envOr("GOOGLE_CREDENTIALS_JSON", ""),
			CalendarID:      envOr("GOOGLE_CALENDAR_ID", DefaultCalendarID),
			Timezone:        envOr("CLINIC_TIMEZONE", DefaultTimezone),
		},
		Clinic: ClinicConfig{
			OpenHour:          envIntOr("CLINIC_OPEN_HOUR", DefaultOpenHour),
			CloseHour:         envIntOr("CLINIC_CLOSE_HOUR", DefaultCloseHour),
			SlotDuration:      time.Duration(envIntOr("CLINIC_SLOT_MINUTES", DefaultSlotMinutes)) * time.Minute,
			FeedbackFunctions: envList("CLINIC_FEEDBACK_FUNCTIONS"),
		},
		Redis: RedisConfig{
			URL:      envOr("REDIS_URL", ""),
			Addr:     envOr("REDIS_ADDR", ""),
			Password: envOr("REDIS_PASSWORD", ""),
			DB:       envIntOr("REDIS_DB", 0),
		},
		ListenAddr:  envOr("FRONTDESK_LISTEN_ADDR", DefaultListenAddr),
		MetricsAddr: envOr("FRONTDESK_METRICS_ADDR", DefaultMetricsAddr),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks internal consistency.
func (c Config) Validate() error {
	if c.Clinic.OpenHour < 0 || c.Clinic.OpenHour > 23 {
		return fmt.Errorf("clinic open hour %d out of range", c.Clinic.OpenHour)
	}
	if c.Clinic.CloseHour < 1 || c.Clinic.CloseHour > 24 {
		return fmt.Errorf("clinic close hour %d out of range", c.Clinic.CloseHour)
	}
	if c.Clinic.OpenHour >= c.Clinic.CloseHour {
		return fmt.Errorf("clinic opens at %d but closes at %d", c.Clinic.OpenHour, c.Clinic.CloseHour)
	}
	if c.Clinic.SlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive, got %s", c.Clinic.SlotDuration)
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Calendar.Timezone, err)
	}
	if _, err := c.Redis.Options(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone. Validate has already
// checked it, so a zero Config falls back to UTC rather than failing.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envList parses a comma-separated environment variable, dropping
// empty entries. Returns nil when the variable is unset.
func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
