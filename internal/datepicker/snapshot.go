package datepicker

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/holidays-picker/pkg/dateutil"
)

// WindowSnapshot is the saved form of a Window
type WindowSnapshot struct {
	DaysOfWeek []string        `json:"days_of_week"`
	Months     []CalendarMonth `json:"months"`
	LastID     int             `json:"last_id"`
}

// Snapshot captures the window state for later restoration
func (w *Window) Snapshot() WindowSnapshot {
	names := make([]string, len(w.daysOfWeek))
	for i, d := range w.daysOfWeek {
		names[i] = strings.ToLower(d.String())
	}
	return WindowSnapshot{
		DaysOfWeek: names,
		Months:     w.Months(),
		LastID:     w.lastID,
	}
}

// RestoreWindow rebuilds a window from a snapshot. The max size is a
// reconstruction parameter; a snapshot holding more months than it allows
// is rejected.
func RestoreWindow(snapshot WindowSnapshot, maxSize int) (*Window, error) {
	days := make([]time.Weekday, len(snapshot.DaysOfWeek))
	for i, name := range snapshot.DaysOfWeek {
		d, err := dateutil.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		days[i] = d
	}

	w, err := newEmptyWindow(days, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if err := w.validateMonths(snapshot.Months); err != nil {
		return nil, err
	}
	highest := maxID(snapshot.Months)
	if snapshot.LastID < highest {
		return nil, fmt.Errorf("%w: last id %d below month id %d", ErrInvalidSnapshot, snapshot.LastID, highest)
	}

	w.months = append([]CalendarMonth(nil), snapshot.Months...)
	w.lastID = snapshot.LastID
	return w, nil
}

// SelectionSnapshot is the saved form of a Selection. Today is a
// reconstruction parameter and is not saved.
type SelectionSnapshot struct {
	Start *dateutil.Date `json:"start,omitempty"`
	End   *dateutil.Date `json:"end,omitempty"`
}

// Snapshot captures the selected endpoints
func (s *Selection) Snapshot() SelectionSnapshot {
	var snapshot SelectionSnapshot
	if start, ok := s.Start(); ok {
		snapshot.Start = &start
	}
	if end, ok := s.End(); ok {
		snapshot.End = &end
	}
	return snapshot
}

// RestoreSelection rebuilds a selection from a snapshot
func RestoreSelection(snapshot SelectionSnapshot, today dateutil.Date) (*Selection, error) {
	s := NewSelection(today)
	if err := s.setRange(snapshot.Start, snapshot.End); err != nil {
		return nil, fmt.Errorf("failed to restore selection: %w", err)
	}
	return s, nil
}
