package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/holidays-picker/pkg/dateutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Picker.MaxSize != 60 {
		t.Errorf("MaxSize = %d, want 60", cfg.Picker.MaxSize)
	}
	days, err := cfg.Picker.GetDaysOfWeek()
	if err != nil {
		t.Fatalf("GetDaysOfWeek() error = %v", err)
	}
	if len(days) != 7 || days[0] != time.Sunday {
		t.Errorf("GetDaysOfWeek() = %v, want Sunday-first week", days)
	}
	if cfg.State.File != "picker-state.json" {
		t.Errorf("State.File = %q", cfg.State.File)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
picker:
  days_of_week: [mon, tue, wed, thu, fri, sat, sun]
  max_size: 12
  initial_month: "2024-01"
  today: "2024-01-15"
holidays:
  country: fr
  periods_file: holidays.txt
state:
  file: /tmp/picker.json
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	days, _ := cfg.Picker.GetDaysOfWeek()
	if days[0] != time.Monday || days[6] != time.Sunday {
		t.Errorf("GetDaysOfWeek() = %v, want Monday-first week", days)
	}
	if cfg.Picker.MaxSize != 12 {
		t.Errorf("MaxSize = %d, want 12", cfg.Picker.MaxSize)
	}
	if got := cfg.Picker.GetInitialMonth(); got != dateutil.NewYearMonth(2024, time.January) {
		t.Errorf("GetInitialMonth() = %v, want 2024-01", got)
	}
	if got := cfg.Picker.GetToday(); got != dateutil.NewDate(2024, 1, 15) {
		t.Errorf("GetToday() = %v, want 2024-01-15", got)
	}
	if cfg.Holidays.Country != "fr" || cfg.Holidays.PeriodsFile != "holidays.txt" {
		t.Errorf("Holidays = %+v", cfg.Holidays)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOLIDAYS_PICKER_MAX_SIZE", "7")

	cfg, err := Load(writeConfig(t, "picker:\n  max_size: 12\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Picker.MaxSize != 7 {
		t.Errorf("MaxSize = %d, want 7 from environment", cfg.Picker.MaxSize)
	}
}

func TestLoad_EnvOverrideWithoutDefault(t *testing.T) {
	t.Setenv("HOLIDAYS_PICKER_TODAY", "2020-02-02")
	t.Setenv("HOLIDAYS_PICKER_INITIAL_MONTH", "2020-01")
	t.Setenv("HOLIDAYS_HOLIDAYS_COUNTRY", "us")
	t.Setenv("HOLIDAYS_HOLIDAYS_PERIODS_FILE", "/srv/holidays.txt")
	t.Setenv("HOLIDAYS_LOG_FILE", "/tmp/picker.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"picker.today", cfg.Picker.Today, "2020-02-02"},
		{"picker.initial_month", cfg.Picker.InitialMonth, "2020-01"},
		{"holidays.country", cfg.Holidays.Country, "us"},
		{"holidays.periods_file", cfg.Holidays.PeriodsFile, "/srv/holidays.txt"},
		{"log.file", cfg.Log.File, "/tmp/picker.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q from environment", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown weekday", "picker:\n  days_of_week: [monday, blursday]\n"},
		{"Duplicate weekday", "picker:\n  days_of_week: [monday, monday]\n"},
		{"Zero max size", "picker:\n  max_size: 0\n"},
		{"Negative scroll buffer", "picker:\n  scroll_buffer: -1\n"},
		{"Bad initial month", "picker:\n  initial_month: january\n"},
		{"Bad today", "picker:\n  today: someday\n"},
		{"Unknown country", "holidays:\n  country: xx\n"},
		{"Empty state file", "state:\n  file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Load() expected error, got nil")
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "picker: [unclosed\n")); err == nil {
		t.Error("Load() expected error for malformed yaml, got nil")
	}
}

func TestPickerConfig_Getters(t *testing.T) {
	c := PickerConfig{Today: "2025-03-09"}

	if got := c.GetToday(); got != dateutil.NewDate(2025, 3, 9) {
		t.Errorf("GetToday() = %v, want 2025-03-09", got)
	}
	if got := c.GetInitialMonth(); got != dateutil.NewYearMonth(2025, time.March) {
		t.Errorf("GetInitialMonth() = %v, want month of today", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PICKER_HOME", "/srv/picker")

	c := Config{State: StateConfig{File: "$PICKER_HOME/state.json"}}
	c.ExpandEnvVars()

	if c.State.File != "/srv/picker/state.json" {
		t.Errorf("State.File = %q", c.State.File)
	}
}
