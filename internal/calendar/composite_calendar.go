package calendar

import (
	"fmt"

	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: user holiday periods
// Fallback: public holidays
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// HolidayAt checks the primary calendar first
func (cc *CompositeCalendar) HolidayAt(date dateutil.Date) (*Holiday, bool) {
	if h, ok := cc.primary.HolidayAt(date); ok {
		return h, true
	}

	h, ok := cc.fallback.HolidayAt(date)
	if ok {
		cc.logger.Debug("Holiday found in fallback calendar",
			zap.Stringer("date", date),
			zap.String("name", h.Name))
	}
	return h, ok
}

// Primary returns the calendar consulted first
func (cc *CompositeCalendar) Primary() Calendar {
	return cc.primary
}

// LoadPrimary loads the primary calendar (if PeriodCalendar)
func (cc *CompositeCalendar) LoadPrimary() error {
	if pc, ok := cc.primary.(*PeriodCalendar); ok {
		if err := pc.Load(); err != nil {
			return fmt.Errorf("failed to load holiday periods: %w", err)
		}
		cc.logger.Info("Holiday periods loaded successfully")
	}
	return nil
}
