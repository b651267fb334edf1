package calendar

import "github.com/username/holidays-picker/pkg/dateutil"

// Source identifies where a holiday came from
type Source string

const (
	SourcePublic Source = "public"
	SourcePeriod Source = "period"
)

// Holiday is a named span of days off, From and To inclusive
type Holiday struct {
	Name   string
	From   dateutil.Date
	To     dateutil.Date
	Source Source
}

// Contains reports whether date falls within the holiday
func (h Holiday) Contains(date dateutil.Date) bool {
	return !date.Before(h.From) && !date.After(h.To)
}

// Calendar answers holiday lookups for the picker
type Calendar interface {
	// HolidayAt returns the holiday covering date, if any
	HolidayAt(date dateutil.Date) (*Holiday, bool)
}
