package datepicker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Edge is the end of the month list a scroll position has reached
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// ErrNegativeBuffer is returned by DetectEdge for a buffer below zero
var ErrNegativeBuffer = errors.New("buffer cannot be negative")

// DetectEdge reports which end of a list of total items the visible range
// [first, last] has reached, buffer items before the actual end. An empty
// list (total == 0) reports EdgeBottom so the caller populates it.
func DetectEdge(first, last, total, buffer int) (Edge, error) {
	if buffer < 0 {
		return EdgeNone, fmt.Errorf("%w, but was %d", ErrNegativeBuffer, buffer)
	}
	if total == 0 {
		return EdgeBottom, nil
	}
	if last == total-1-buffer {
		return EdgeBottom, nil
	}
	if first == buffer {
		return EdgeTop, nil
	}
	return EdgeNone, nil
}

// Scroller serializes window extensions triggered by scroll callbacks.
// Overlapping triggers for the same edge share one extension.
type Scroller struct {
	window *Window
	mu     sync.Mutex
	group  singleflight.Group
	logger *zap.Logger
}

// NewScroller creates a new Scroller over window
func NewScroller(window *Window, logger *zap.Logger) *Scroller {
	return &Scroller{
		window: window,
		logger: logger,
	}
}

// Reached extends the window at edge and returns the generated month.
// EdgeNone leaves the window unchanged and returns false.
func (s *Scroller) Reached(edge Edge) (CalendarMonth, bool) {
	if edge == EdgeNone {
		return CalendarMonth{}, false
	}

	v, _, shared := s.group.Do(edge.String(), func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var month CalendarMonth
		if edge == EdgeTop {
			month = s.window.ExtendBackward()
		} else {
			month = s.window.ExtendForward()
		}

		s.logger.Debug("Window extended",
			zap.String("edge", edge.String()),
			zap.Stringer("month", month.Month),
			zap.Int("id", month.ID),
			zap.Int("size", s.window.Len()))

		return month, nil
	})
	if shared {
		s.logger.Debug("Coalesced duplicate scroll trigger", zap.String("edge", edge.String()))
	}

	return v.(CalendarMonth), true
}

// Months returns a consistent copy of the window's months
func (s *Scroller) Months() []CalendarMonth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Months()
}

// Snapshot captures the window state between extensions
func (s *Scroller) Snapshot() WindowSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Snapshot()
}

// Find returns the month of the window containing date
func (s *Scroller) Find(date dateutil.Date) (CalendarMonth, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Find(date)
}

// Bounds returns the first and last month of the window
func (s *Scroller) Bounds() (first, last dateutil.YearMonth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.First().Month, s.window.Last().Month
}
