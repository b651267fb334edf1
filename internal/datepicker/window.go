package datepicker

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/holidays-picker/pkg/dateutil"
)

// DefaultMaxSize is the number of months a window retains by default
const DefaultMaxSize = 60

var (
	ErrEmptyWeek         = errors.New("days of week must not be empty")
	ErrDuplicateWeekday  = errors.New("days of week contains duplicates")
	ErrInvalidWeekday    = errors.New("days of week contains an invalid weekday")
	ErrWeekdayNotFound   = errors.New("first weekday of month not found in days of week")
	ErrInvalidMaxSize    = errors.New("max size must be at least 1")
	ErrInvalidSnapshot   = errors.New("invalid window snapshot")
	ErrNonContiguousList = errors.New("months are not contiguous")
)

// DefaultDaysOfWeek is a seven day week starting on Sunday
func DefaultDaysOfWeek() []time.Weekday {
	return dateutil.WeekStartingOn(time.Sunday)
}

// Window is a bounded, contiguous sequence of generated months that grows at
// either end and evicts from the opposite end once it exceeds its max size.
//
// Window is not safe for concurrent use; see Scroller.
type Window struct {
	daysOfWeek []time.Weekday
	maxSize    int
	months     []CalendarMonth
	lastID     int
	// fullWeek is set when daysOfWeek is a rotation of the seven weekdays,
	// making a weekday lookup valid for any month.
	fullWeek bool
}

type windowOptions struct {
	initialMonth  dateutil.YearMonth
	daysOfWeek    []time.Weekday
	maxSize       int
	initialMonths []CalendarMonth
}

// WindowOption configures NewWindow
type WindowOption func(*windowOptions)

// WithInitialMonth sets the month generated on construction
func WithInitialMonth(month dateutil.YearMonth) WindowOption {
	return func(o *windowOptions) { o.initialMonth = month }
}

// WithDaysOfWeek sets the column order and week length
func WithDaysOfWeek(days []time.Weekday) WindowOption {
	return func(o *windowOptions) { o.daysOfWeek = append([]time.Weekday(nil), days...) }
}

// WithMaxSize sets the maximum number of retained months
func WithMaxSize(size int) WindowOption {
	return func(o *windowOptions) { o.maxSize = size }
}

// WithInitialMonths appends already generated months after the initial month
// without regenerating them.
func WithInitialMonths(months []CalendarMonth) WindowOption {
	return func(o *windowOptions) { o.initialMonths = months }
}

// NewWindow creates a window holding the initial month
func NewWindow(opts ...WindowOption) (*Window, error) {
	o := windowOptions{
		initialMonth: dateutil.CurrentYearMonth(),
		daysOfWeek:   DefaultDaysOfWeek(),
		maxSize:      DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	w, err := newEmptyWindow(o.daysOfWeek, o.maxSize)
	if err != nil {
		return nil, err
	}

	startIndex, ok := w.lookupStartIndex(o.initialMonth)
	if !ok {
		return nil, fmt.Errorf("%w: %s starts on %s", ErrWeekdayNotFound, o.initialMonth, o.initialMonth.FirstWeekday())
	}
	// Supplied months keep their ids, so the generated one is numbered after them.
	w.lastID = maxID(o.initialMonths)
	w.months = []CalendarMonth{w.generate(o.initialMonth, startIndex)}

	if len(o.initialMonths) > 0 {
		months := append(w.months, o.initialMonths...)
		if err := w.validateMonths(months); err != nil {
			return nil, err
		}
		w.months = months
	}

	return w, nil
}

func newEmptyWindow(daysOfWeek []time.Weekday, maxSize int) (*Window, error) {
	if err := validateDaysOfWeek(daysOfWeek); err != nil {
		return nil, err
	}
	if maxSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxSize, maxSize)
	}

	return &Window{
		daysOfWeek: daysOfWeek,
		maxSize:    maxSize,
		fullWeek:   isWeekRotation(daysOfWeek),
	}, nil
}

func validateDaysOfWeek(days []time.Weekday) error {
	if len(days) == 0 {
		return ErrEmptyWeek
	}
	seen := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: %s", ErrDuplicateWeekday, d)
		}
		seen[d] = true
	}
	return nil
}

func isWeekRotation(days []time.Weekday) bool {
	if len(days) != 7 {
		return false
	}
	for i := 1; i < len(days); i++ {
		if days[i] != (days[i-1]+1)%7 {
			return false
		}
	}
	return true
}

// Months returns a copy of the current months, oldest first
func (w *Window) Months() []CalendarMonth {
	return append([]CalendarMonth(nil), w.months...)
}

// Len returns the number of retained months
func (w *Window) Len() int {
	return len(w.months)
}

// First returns the oldest retained month
func (w *Window) First() CalendarMonth {
	return w.months[0]
}

// Last returns the newest retained month
func (w *Window) Last() CalendarMonth {
	return w.months[len(w.months)-1]
}

// DaysOfWeek returns the configured column order
func (w *Window) DaysOfWeek() []time.Weekday {
	return append([]time.Weekday(nil), w.daysOfWeek...)
}

// MaxSize returns the maximum number of retained months
func (w *Window) MaxSize() int {
	return w.maxSize
}

// Find returns the retained month containing date
func (w *Window) Find(date dateutil.Date) (CalendarMonth, bool) {
	target := date.YearMonth()
	for _, m := range w.months {
		if m.Month == target {
			return m, true
		}
	}
	return CalendarMonth{}, false
}

// ExtendForward appends the month after the last one, evicting the oldest on overflow.
func (w *Window) ExtendForward() CalendarMonth {
	last := w.Last()
	next := last.Month.AddMonths(1)

	startIndex, ok := w.lookupStartIndex(next)
	if !ok {
		startIndex = w.nextStartIndex(last)
	}
	month := w.generate(next, startIndex)

	months := make([]CalendarMonth, 0, len(w.months)+1)
	months = append(months, w.months...)
	months = append(months, month)
	if len(months) > w.maxSize {
		months = months[1:]
	}
	w.months = months

	return month
}

// ExtendBackward prepends the month before the first one, evicting the newest on overflow.
func (w *Window) ExtendBackward() CalendarMonth {
	first := w.First()
	previous := first.Month.AddMonths(-1)

	startIndex, ok := w.lookupStartIndex(previous)
	if !ok {
		startIndex = w.previousStartIndex(first, previous)
	}
	month := w.generate(previous, startIndex)

	months := make([]CalendarMonth, 0, len(w.months)+1)
	months = append(months, month)
	months = append(months, w.months...)
	if len(months) > w.maxSize {
		months = months[:len(months)-1]
	}
	w.months = months

	return month
}

func (w *Window) generate(month dateutil.YearMonth, startIndex int) CalendarMonth {
	w.lastID++
	return CalendarMonth{
		Weeks: generateWeeks(month, startIndex, len(w.daysOfWeek)),
		Month: month,
		ID:    w.lastID,
	}
}

// lookupStartIndex locates the month's first weekday in the configured week.
// Custom cycles that are not a seven day rotation only anchor the initial month.
func (w *Window) lookupStartIndex(month dateutil.YearMonth) (int, bool) {
	if !w.fullWeek && len(w.months) > 0 {
		return 0, false
	}
	first := month.FirstWeekday()
	for i, d := range w.daysOfWeek {
		if d == first {
			return i, true
		}
	}
	return 0, false
}

// nextStartIndex continues the column cycle after the previous month's last day
func (w *Window) nextStartIndex(previous CalendarMonth) int {
	index := previous.LastDayIndex() + 1
	if index < len(w.daysOfWeek) {
		return index
	}
	return 0
}

// previousStartIndex runs the column cycle backwards from the following month
func (w *Window) previousStartIndex(following CalendarMonth, month dateutil.YearMonth) int {
	size := len(w.daysOfWeek)
	index := (following.FirstDayIndex() - month.LengthOfMonth()) % size
	if index < 0 {
		index += size
	}
	return index
}

func (w *Window) validateMonths(months []CalendarMonth) error {
	if len(months) == 0 {
		return fmt.Errorf("%w: no months", ErrInvalidSnapshot)
	}
	if len(months) > w.maxSize {
		return fmt.Errorf("%w: %d months exceed max size %d", ErrInvalidSnapshot, len(months), w.maxSize)
	}
	ids := make(map[int]bool, len(months))
	for i, m := range months {
		if ids[m.ID] {
			return fmt.Errorf("%w: duplicate month id %d", ErrInvalidSnapshot, m.ID)
		}
		ids[m.ID] = true

		if err := w.validateMonth(m); err != nil {
			return err
		}
		if i > 0 && months[i-1].Month.AddMonths(1) != m.Month {
			return fmt.Errorf("%w: %s follows %s", ErrNonContiguousList, m.Month, months[i-1].Month)
		}
	}
	return nil
}

func (w *Window) validateMonth(m CalendarMonth) error {
	size := len(w.daysOfWeek)
	day := 1
	for _, week := range m.Weeks {
		if week.TotalSize != size {
			return fmt.Errorf("%w: %s has week size %d, want %d", ErrInvalidSnapshot, m.Month, week.TotalSize, size)
		}
		if len(week.Days) != week.LastDayIndex-week.FirstDayIndex+1 || week.FirstDayIndex < 0 || week.LastDayIndex >= size {
			return fmt.Errorf("%w: %s has malformed week", ErrInvalidSnapshot, m.Month)
		}
		for _, d := range week.Days {
			if d.Date != m.Month.AtDay(day) {
				return fmt.Errorf("%w: %s has unexpected day %s", ErrInvalidSnapshot, m.Month, d.Date)
			}
			day++
		}
	}
	if day-1 != m.Month.LengthOfMonth() {
		return fmt.Errorf("%w: %s has %d days, want %d", ErrInvalidSnapshot, m.Month, day-1, m.Month.LengthOfMonth())
	}
	return nil
}

func maxID(months []CalendarMonth) int {
	highest := 0
	for _, m := range months {
		highest = max(highest, m.ID)
	}
	return highest
}
