package datepicker

import (
	"errors"
	"fmt"

	"github.com/username/holidays-picker/pkg/dateutil"
)

// ErrInvalidRange is returned when an end date is not strictly after a start date
var ErrInvalidRange = errors.New("invalid selection range")

// Selection tracks a start/end date range built from single taps.
//
// Every SelectDate call changes the state:
//
//	empty      -> start only
//	start only -> complete     (date strictly after start)
//	start only -> start only   (any other date becomes the new start)
//	complete   -> start only   (date becomes the new start)
type Selection struct {
	start *dateutil.Date
	end   *dateutil.Date
	today dateutil.Date
}

// NewSelection returns an empty selection relative to today
func NewSelection(today dateutil.Date) *Selection {
	return &Selection{today: today}
}

// NewSelectionWithRange returns a selection holding start and end, or an error
// if end is set and not strictly after start.
func NewSelectionWithRange(today, start dateutil.Date, end *dateutil.Date) (*Selection, error) {
	s := &Selection{today: today}
	if err := s.setRange(&start, end); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Selection) setRange(start, end *dateutil.Date) error {
	if end != nil {
		if start == nil {
			return fmt.Errorf("%w: end %s without start", ErrInvalidRange, end)
		}
		if !start.Before(*end) {
			return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRange, start, end)
		}
	}
	s.start = copyDate(start)
	s.end = copyDate(end)
	return nil
}

func copyDate(d *dateutil.Date) *dateutil.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Today returns the reference day fixed at construction
func (s *Selection) Today() dateutil.Date {
	return s.today
}

// Start returns the start date if one is selected
func (s *Selection) Start() (dateutil.Date, bool) {
	if s.start == nil {
		return dateutil.Date{}, false
	}
	return *s.start, true
}

// End returns the end date if one is selected
func (s *Selection) End() (dateutil.Date, bool) {
	if s.end == nil {
		return dateutil.Date{}, false
	}
	return *s.end, true
}

// IsValidRange reports whether both endpoints are set and ordered
func (s *Selection) IsValidRange() bool {
	return s.start != nil && s.end != nil && s.start.Before(*s.end)
}

// SelectDate applies a tap on date
func (s *Selection) SelectDate(date dateutil.Date) {
	switch {
	case s.start == nil:
		s.start = &date
	case s.end == nil && date.After(*s.start):
		s.end = &date
	default:
		s.start = &date
		s.end = nil
	}
}

// Clear removes both endpoints
func (s *Selection) Clear() {
	s.start, s.end = nil, nil
}

// IsToday reports whether date is the reference day
func (s *Selection) IsToday(date dateutil.Date) bool {
	return date == s.today
}

// IsSelected reports whether date is one of the endpoints
func (s *Selection) IsSelected(date dateutil.Date) bool {
	return s.IsStartDate(date) || s.IsEndDate(date)
}

// IsInExclusiveRange reports whether date lies strictly between start and end
func (s *Selection) IsInExclusiveRange(date dateutil.Date) bool {
	return s.start != nil && s.start.Before(date) &&
		s.end != nil && s.end.After(date)
}

// IsStartDate reports whether date is the range start
func (s *Selection) IsStartDate(date dateutil.Date) bool {
	return s.start != nil && *s.start == date
}

// IsEndDate reports whether date is the range end
func (s *Selection) IsEndDate(date dateutil.Date) bool {
	return s.end != nil && *s.end == date
}

// Days returns the number of days in a valid range, endpoints included
func (s *Selection) Days() int {
	if !s.IsValidRange() {
		return 0
	}
	return s.start.DaysUntil(*s.end) + 1
}

// Label formats the range as "start - end", using placeholder for unset endpoints
func (s *Selection) Label(format func(dateutil.Date) string, placeholder string) string {
	return s.endpointLabel(s.start, format, placeholder) + " - " + s.endpointLabel(s.end, format, placeholder)
}

func (s *Selection) endpointLabel(d *dateutil.Date, format func(dateutil.Date) string, placeholder string) string {
	if d == nil {
		return placeholder
	}
	return format(*d)
}
