package datepicker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/username/holidays-picker/pkg/dateutil"
)

func TestWindowSnapshot_RoundTrip(t *testing.T) {
	w := mustWindow(t,
		WithInitialMonth(dateutil.NewYearMonth(2024, time.January)),
		WithDaysOfWeek(dateutil.WeekStartingOn(time.Monday)),
		WithMaxSize(4))
	w.ExtendForward()
	w.ExtendBackward()
	w.ExtendForward()
	w.ExtendForward() // evicts December

	data, err := json.Marshal(w.Snapshot())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var snapshot WindowSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	restored, err := RestoreWindow(snapshot, 4)
	if err != nil {
		t.Fatalf("RestoreWindow() error = %v", err)
	}

	if restored.Len() != w.Len() {
		t.Fatalf("Len() = %d, want %d", restored.Len(), w.Len())
	}
	for i, m := range restored.Months() {
		orig := w.Months()[i]
		if m.ID != orig.ID || m.Month != orig.Month || len(m.Weeks) != len(orig.Weeks) {
			t.Errorf("month %d = %v/%d, want %v/%d", i, m.Month, m.ID, orig.Month, orig.ID)
		}
	}
	if restored.DaysOfWeek()[0] != time.Monday {
		t.Errorf("DaysOfWeek()[0] = %v, want Monday", restored.DaysOfWeek()[0])
	}

	// Ids continue after the evicted December month.
	next := restored.ExtendForward()
	if next.ID != 6 {
		t.Errorf("next ID = %d, want 6", next.ID)
	}
}

func TestRestoreWindow_Invalid(t *testing.T) {
	w := mustWindow(t, WithInitialMonth(dateutil.NewYearMonth(2024, time.January)))
	w.ExtendForward()
	w.ExtendForward()
	valid := w.Snapshot()

	tests := []struct {
		name    string
		mutate  func(s *WindowSnapshot)
		maxSize int
		wantErr error
	}{
		{
			name:    "No months",
			mutate:  func(s *WindowSnapshot) { s.Months = nil },
			maxSize: 60,
			wantErr: ErrInvalidSnapshot,
		},
		{
			name:    "Gap between months",
			mutate:  func(s *WindowSnapshot) { s.Months = []CalendarMonth{s.Months[0], s.Months[2]} },
			maxSize: 60,
			wantErr: ErrNonContiguousList,
		},
		{
			name:    "Duplicate id",
			mutate:  func(s *WindowSnapshot) { s.Months[1].ID = s.Months[0].ID },
			maxSize: 60,
			wantErr: ErrInvalidSnapshot,
		},
		{
			name:    "Last id below month ids",
			mutate:  func(s *WindowSnapshot) { s.LastID = 1 },
			maxSize: 60,
			wantErr: ErrInvalidSnapshot,
		},
		{
			name:    "Too many months",
			mutate:  func(s *WindowSnapshot) {},
			maxSize: 2,
			wantErr: ErrInvalidSnapshot,
		},
		{
			name:    "Unknown weekday",
			mutate:  func(s *WindowSnapshot) { s.DaysOfWeek[0] = "caturday" },
			maxSize: 60,
			wantErr: ErrInvalidSnapshot,
		},
		{
			name: "Missing day",
			mutate: func(s *WindowSnapshot) {
				s.Months[0].Weeks = s.Months[0].Weeks[:len(s.Months[0].Weeks)-1]
			},
			maxSize: 60,
			wantErr: ErrInvalidSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := cloneSnapshot(t, valid)
			tt.mutate(&snapshot)

			_, err := RestoreWindow(snapshot, tt.maxSize)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RestoreWindow() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func cloneSnapshot(t *testing.T, s WindowSnapshot) WindowSnapshot {
	t.Helper()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out WindowSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return out
}

func TestNewWindow_WithInitialMonths(t *testing.T) {
	saved := mustWindow(t, WithInitialMonth(dateutil.NewYearMonth(2024, time.January)))
	saved.ExtendForward()
	saved.ExtendForward()

	w, err := NewWindow(
		WithInitialMonth(dateutil.NewYearMonth(2023, time.December)),
		WithInitialMonths(saved.Months()))
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}

	months := w.Months()
	if len(months) != 4 {
		t.Fatalf("Len() = %d, want 4", len(months))
	}
	if months[0].Month != dateutil.NewYearMonth(2023, time.December) || months[0].ID != 4 {
		t.Errorf("months[0] = %v/%d, want 2023-12/4", months[0].Month, months[0].ID)
	}
	if months[1].ID != 1 || months[3].ID != 3 {
		t.Errorf("supplied months were renumbered: %d, %d", months[1].ID, months[3].ID)
	}
	if next := w.ExtendForward(); next.ID != 5 {
		t.Errorf("next ID = %d, want 5", next.ID)
	}
}

func TestNewWindow_WithInitialMonthsRejectsGap(t *testing.T) {
	saved := mustWindow(t, WithInitialMonth(dateutil.NewYearMonth(2024, time.January)))

	_, err := NewWindow(
		WithInitialMonth(dateutil.NewYearMonth(2023, time.November)),
		WithInitialMonths(saved.Months()))
	if !errors.Is(err, ErrNonContiguousList) {
		t.Errorf("NewWindow() error = %v, want %v", err, ErrNonContiguousList)
	}
}

func TestNewWindow_WithInitialMonthsRespectsMaxSize(t *testing.T) {
	saved := mustWindow(t, WithInitialMonth(dateutil.NewYearMonth(2024, time.February)))
	saved.ExtendForward()
	saved.ExtendForward()

	_, err := NewWindow(
		WithInitialMonth(dateutil.NewYearMonth(2024, time.January)),
		WithMaxSize(2),
		WithInitialMonths(saved.Months()))
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("NewWindow() error = %v, want %v", err, ErrInvalidSnapshot)
	}

	w, err := NewWindow(
		WithInitialMonth(dateutil.NewYearMonth(2024, time.January)),
		WithMaxSize(4),
		WithInitialMonths(saved.Months()))
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	w.ExtendForward()
	if w.Len() != 4 {
		t.Errorf("Len() after ExtendForward = %d, want 4", w.Len())
	}
}

func TestSelectionSnapshot_RoundTrip(t *testing.T) {
	today := dateutil.NewDate(2024, 1, 1)
	s := NewSelection(today)
	s.SelectDate(dateutil.NewDate(2024, 1, 5))
	s.SelectDate(dateutil.NewDate(2024, 1, 9))

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"start":"2024-01-05","end":"2024-01-09"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var snapshot SelectionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	later := dateutil.NewDate(2024, 2, 1)
	restored, err := RestoreSelection(snapshot, later)
	if err != nil {
		t.Fatalf("RestoreSelection() error = %v", err)
	}
	if !restored.IsValidRange() || !restored.IsStartDate(dateutil.NewDate(2024, 1, 5)) {
		t.Errorf("restored selection lost its range")
	}
	if restored.Today() != later {
		t.Errorf("Today() = %v, want %v", restored.Today(), later)
	}
}

func TestRestoreSelection_Invalid(t *testing.T) {
	end := dateutil.NewDate(2024, 1, 9)
	start := dateutil.NewDate(2024, 1, 9)

	tests := []struct {
		name     string
		snapshot SelectionSnapshot
	}{
		{"End without start", SelectionSnapshot{End: &end}},
		{"Start not before end", SelectionSnapshot{Start: &start, End: &end}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RestoreSelection(tt.snapshot, dateutil.NewDate(2024, 1, 1))
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("RestoreSelection() error = %v, want %v", err, ErrInvalidRange)
			}
		})
	}
}

func TestRestoreSelection_Empty(t *testing.T) {
	s, err := RestoreSelection(SelectionSnapshot{}, dateutil.NewDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("RestoreSelection() error = %v", err)
	}
	if _, ok := s.Start(); ok {
		t.Errorf("Start() set on empty snapshot")
	}
}
