package session

import (
	"fmt"

	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/internal/config"
	"go.uber.org/zap"
)

// OpenCalendar builds the holiday calendar from configuration.
// Holiday periods take precedence over public holidays when both are configured.
func OpenCalendar(cfg config.HolidaysConfig, logger *zap.Logger) (calendar.Calendar, error) {
	var public calendar.Calendar = calendar.NoHolidays{}
	if cfg.Country != "" {
		pc, err := calendar.NewPublicCalendar(cfg.Country, logger)
		if err != nil {
			return nil, err
		}
		public = pc
	}

	if cfg.PeriodsFile == "" {
		return public, nil
	}

	composite := calendar.NewCompositeCalendar(calendar.NewPeriodCalendar(cfg.PeriodsFile, logger), public, logger)
	if err := composite.LoadPrimary(); err != nil {
		return nil, fmt.Errorf("failed to open holiday calendar: %w", err)
	}
	return composite, nil
}
