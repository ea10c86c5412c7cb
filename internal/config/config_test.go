package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_APPLICATION_CREDENTIALS", "GOOGLE_CREDENTIALS_JSON",
		"GOOGLE_CALENDAR_ID", "CLINIC_TIMEZONE",
		"CLINIC_OPEN_HOUR", "CLINIC_CLOSE_HOUR", "CLINIC_SLOT_MINUTES",
		"CLINIC_FEEDBACK_FUNCTIONS",
		"REDIS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"FRONTDESK_LISTEN_ADDR", "FRONTDESK_METRICS_ADDR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Calendar.CalendarID != DefaultCalendarID {
		t.Errorf("CalendarID = %q", cfg.Calendar.CalendarID)
	}
	if cfg.Calendar.Timezone != DefaultTimezone {
		t.Errorf("Timezone = %q", cfg.Calendar.Timezone)
	}
	if cfg.Calendar.Configured() {
		t.Error("Calendar.Configured() = true without credentials")
	}
	if cfg.Clinic.OpenHour != DefaultOpenHour || cfg.Clinic.CloseHour != DefaultCloseHour {
		t.Errorf("hours = %d..%d", cfg.Clinic.OpenHour, cfg.Clinic.CloseHour)
	}
	if cfg.Clinic.SlotDuration != 30*time.Minute {
		t.Errorf("SlotDuration = %s", cfg.Clinic.SlotDuration)
	}
	if cfg.Redis.Configured() {
		t.Error("Redis.Configured() = true without settings")
	}
	if cfg.ListenAddr != DefaultListenAddr || cfg.MetricsAddr != DefaultMetricsAddr {
		t.Errorf("addrs = %q, %q", cfg.ListenAddr, cfg.MetricsAddr)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CALENDAR_ID", "clinic@example.com")
	t.Setenv("CLINIC_TIMEZONE", "UTC")
	t.Setenv("CLINIC_OPEN_HOUR", "8")
	t.Setenv("CLINIC_CLOSE_HOUR", "16")
	t.Setenv("CLINIC_SLOT_MINUTES", "45")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Calendar.CalendarID != "clinic@example.com" {
		t.Errorf("CalendarID = %q", cfg.Calendar.CalendarID)
	}
	if cfg.Clinic.SlotDuration != 45*time.Minute {
		t.Errorf("SlotDuration = %s", cfg.Clinic.SlotDuration)
	}
	hours := cfg.Clinic.WorkingHours()
	if hours.Open != 8 || hours.Close != 16 {
		t.Errorf("WorkingHours = %+v", hours)
	}

	opts, err := cfg.Redis.Options()
	if err != nil {
		t.Fatalf("Redis.Options: %v", err)
	}
	if opts == nil || opts.Addr != "localhost:6379" || opts.DB != 2 {
		t.Errorf("Options = %+v", opts)
	}
}

func TestFromEnv_FeedbackFunctions(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Clinic.FeedbackFunctions != nil {
		t.Errorf("FeedbackFunctions = %v, want nil when unset", cfg.Clinic.FeedbackFunctions)
	}

	t.Setenv("CLINIC_FEEDBACK_FUNCTIONS", "check_availability, create_appointment,,")
	cfg, err = FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	want := []string{"check_availability", "create_appointment"}
	if len(cfg.Clinic.FeedbackFunctions) != len(want) {
		t.Fatalf("FeedbackFunctions = %v", cfg.Clinic.FeedbackFunctions)
	}
	for i, fn := range want {
		if cfg.Clinic.FeedbackFunctions[i] != fn {
			t.Errorf("FeedbackFunctions[%d] = %q, want %q", i, cfg.Clinic.FeedbackFunctions[i], fn)
		}
	}
}

func TestFromEnv_RedisURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://:secret@redis.example.com:6380/1")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	opts, err := cfg.Redis.Options()
	if err != nil {
		t.Fatalf("Redis.Options: %v", err)
	}
	if opts.Addr != "redis.example.com:6380" {
		t.Errorf("Addr = %q", opts.Addr)
	}
	if opts.Password != "secret" || opts.DB != 1 {
		t.Errorf("Options = %+v", opts)
	}
}

func TestFromEnv_InvalidRedisURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "http://not-redis")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for invalid REDIS_URL")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Calendar: CalendarConfig{Timezone: "UTC"},
			Clinic:   ClinicConfig{OpenHour: 9, CloseHour: 18, SlotDuration: 30 * time.Minute},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"valid", func(*Config) {}, ""},
		{"open after close", func(c *Config) { c.Clinic.OpenHour = 19 }, "opens at"},
		{"open equals close", func(c *Config) { c.Clinic.OpenHour = 18 }, "opens at"},
		{"negative open", func(c *Config) { c.Clinic.OpenHour = -1 }, "out of range"},
		{"close past midnight", func(c *Config) { c.Clinic.CloseHour = 25 }, "out of range"},
		{"zero slot", func(c *Config) { c.Clinic.SlotDuration = 0 }, "slot duration"},
		{"bad timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("err = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "GOOGLE_CALENDAR_ID=fromfile@example.com\nCLINIC_SLOT_MINUTES=20\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	defer func() {
		os.Unsetenv("GOOGLE_CALENDAR_ID")
		os.Unsetenv("CLINIC_SLOT_MINUTES")
	}()

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Calendar.CalendarID != "fromfile@example.com" {
		t.Errorf("CalendarID = %q", cfg.Calendar.CalendarID)
	}
	if cfg.Clinic.SlotDuration != 20*time.Minute {
		t.Errorf("SlotDuration = %s", cfg.Clinic.SlotDuration)
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLocation(t *testing.T) {
	cfg := Config{Calendar: CalendarConfig{Timezone: "Europe/Athens"}}
	if got := cfg.Location().String(); got != "Europe/Athens" {
		t.Errorf("Location = %q", got)
	}

	broken := Config{Calendar: CalendarConfig{Timezone: "nope"}}
	if got := broken.Location(); got != time.UTC {
		t.Errorf("Location = %v, want UTC fallback", got)
	}
}
