package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/internal/config"
	"github.com/username/holidays-picker/internal/state"
	"go.uber.org/zap"
)

func TestOpenCalendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.txt")
	if err := os.WriteFile(path, []byte("2024-07-01 2024-07-10 Summer camp\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cal, err := OpenCalendar(config.HolidaysConfig{Country: "us", PeriodsFile: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenCalendar() error = %v", err)
	}

	tests := []struct {
		name       string
		day        int
		wantName   string
		wantSource calendar.Source
	}{
		{"Period wins over public holiday", 4, "Summer camp", calendar.SourcePeriod},
		{"Plain period day", 8, "Summer camp", calendar.SourcePeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := cal.HolidayAt(date(2024, time.July, tt.day))
			if !ok {
				t.Fatal("HolidayAt() = false, want a holiday")
			}
			if h.Name != tt.wantName || h.Source != tt.wantSource {
				t.Errorf("HolidayAt() = %+v", h)
			}
		})
	}

	if _, ok := cal.HolidayAt(date(2024, time.July, 11)); ok {
		t.Error("HolidayAt(2024-07-11) = true, want false")
	}
	if h, ok := cal.HolidayAt(date(2024, time.December, 25)); !ok || h.Source != calendar.SourcePublic {
		t.Errorf("HolidayAt(2024-12-25) = %+v, %v, want public holiday", h, ok)
	}
}

func TestOpenCalendar_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.HolidaysConfig
	}{
		{"Unknown country", config.HolidaysConfig{Country: "xx"}},
		{"Missing periods file", config.HolidaysConfig{PeriodsFile: filepath.Join(t.TempDir(), "missing.txt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenCalendar(tt.cfg, zap.NewNop()); err == nil {
				t.Error("OpenCalendar() expected error, got nil")
			}
		})
	}
}

func TestOpenCalendar_Empty(t *testing.T) {
	cal, err := OpenCalendar(config.HolidaysConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenCalendar() error = %v", err)
	}
	if _, ok := cal.HolidayAt(date(2024, time.December, 25)); ok {
		t.Error("empty calendar reported a holiday")
	}
}

func TestManager_Periods(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.txt")
	if err := os.WriteFile(path, []byte("2024-02-10 2024-02-25 Winter break\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name      string
		holidays  config.HolidaysConfig
		wantFound bool
	}{
		{"No periods file", config.HolidaysConfig{Country: "us"}, false},
		{"Periods file only", config.HolidaysConfig{PeriodsFile: path}, true},
		{"Periods file over public holidays", config.HolidaysConfig{Country: "gb", PeriodsFile: path}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := OpenCalendar(tt.holidays, zap.NewNop())
			if err != nil {
				t.Fatalf("OpenCalendar() error = %v", err)
			}
			cfg := testConfig(t)
			cfg.Holidays = tt.holidays
			m, err := NewManager(cfg, state.NewStore(cfg.State.File, zap.NewNop()), cal, zap.NewNop())
			if err != nil {
				t.Fatalf("NewManager() error = %v", err)
			}

			periods, ok := m.Periods()
			if ok != tt.wantFound {
				t.Fatalf("Periods() found = %v, want %v", ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if got := periods.Periods(); len(got) != 1 || got[0].Name != "Winter break" {
				t.Errorf("Periods() = %+v, want the loaded winter break", got)
			}
		})
	}
}
