package calendar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
)

var countryHolidays = map[string][]*cal.Holiday{
	"us": us.Holidays,
	"gb": gb.Holidays,
	"fr": fr.Holidays,
	"de": de.Holidays,
}

// Countries returns the supported country codes
func Countries() []string {
	codes := make([]string, 0, len(countryHolidays))
	for code := range countryHolidays {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PublicCalendar implements Calendar using a country's public holidays
type PublicCalendar struct {
	country  string
	calendar *cal.BusinessCalendar
	logger   *zap.Logger
}

// NewPublicCalendar creates a PublicCalendar for a country code (us, gb, fr, de)
func NewPublicCalendar(country string, logger *zap.Logger) (*PublicCalendar, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	holidays, ok := countryHolidays[country]
	if !ok {
		return nil, fmt.Errorf("unsupported holidays country %q, want one of %s",
			country, strings.Join(Countries(), ", "))
	}

	businessCalendar := cal.NewBusinessCalendar()
	businessCalendar.AddHoliday(holidays...)

	logger.Debug("Public holiday calendar created",
		zap.String("country", country),
		zap.Int("holidays", len(holidays)))

	return &PublicCalendar{
		country:  country,
		calendar: businessCalendar,
		logger:   logger,
	}, nil
}

// HolidayAt returns the public holiday observed on date
func (p *PublicCalendar) HolidayAt(date dateutil.Date) (*Holiday, bool) {
	_, observed, h := p.calendar.IsHoliday(date.Time())
	if !observed || h == nil {
		return nil, false
	}
	return &Holiday{
		Name:   h.Name,
		From:   date,
		To:     date,
		Source: SourcePublic,
	}, true
}

// NoHolidays is a Calendar without any holidays
type NoHolidays struct{}

func (NoHolidays) HolidayAt(dateutil.Date) (*Holiday, bool) { return nil, false }
