package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/internal/config"
	"github.com/username/holidays-picker/internal/datepicker"
	"github.com/username/holidays-picker/internal/state"
	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrInvalidCount is returned by Scroll for a non-positive month count
var ErrInvalidCount = errors.New("scroll count must be positive")

// Manager ties the calendar window, the range selection and their persisted state together
type Manager struct {
	config    *config.Config
	store     *state.Store
	calendar  calendar.Calendar
	scroller  *datepicker.Scroller
	selection *datepicker.Selection
	logger    *zap.Logger
}

// NewManager creates a new session manager, resuming the saved state when it is still usable
func NewManager(
	cfg *config.Config,
	store *state.Store,
	cal calendar.Calendar,
	logger *zap.Logger,
) (*Manager, error) {
	if cal == nil {
		cal = calendar.NoHolidays{}
	}

	saved, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load picker state, starting fresh", zap.Error(err))
		saved = &state.PickerState{}
	}

	window, err := openWindow(cfg, saved, logger)
	if err != nil {
		return nil, err
	}

	today := cfg.Picker.GetToday()
	selection := datepicker.NewSelection(today)
	if saved.Selection != nil {
		restored, err := datepicker.RestoreSelection(*saved.Selection, today)
		if err != nil {
			logger.Warn("Discarding saved selection", zap.Error(err))
		} else {
			selection = restored
		}
	}

	return &Manager{
		config:    cfg,
		store:     store,
		calendar:  cal,
		scroller:  datepicker.NewScroller(window, logger),
		selection: selection,
		logger:    logger,
	}, nil
}

func openWindow(cfg *config.Config, saved *state.PickerState, logger *zap.Logger) (*datepicker.Window, error) {
	days, err := cfg.Picker.GetDaysOfWeek()
	if err != nil {
		return nil, fmt.Errorf("failed to read days of week: %w", err)
	}

	if saved.Window != nil {
		restored, err := datepicker.RestoreWindow(*saved.Window, cfg.Picker.MaxSize)
		switch {
		case err != nil:
			logger.Warn("Discarding saved calendar window", zap.Error(err))
		case !slices.Equal(restored.DaysOfWeek(), days):
			logger.Info("Week layout changed, regenerating calendar window",
				zap.Int("saved_columns", len(restored.DaysOfWeek())),
				zap.Int("columns", len(days)))
		default:
			logger.Debug("Calendar window restored",
				zap.Int("months", restored.Len()),
				zap.Stringer("first", restored.First().Month),
				zap.Stringer("last", restored.Last().Month))
			return restored, nil
		}
	}

	window, err := datepicker.NewWindow(
		datepicker.WithInitialMonth(cfg.Picker.GetInitialMonth()),
		datepicker.WithDaysOfWeek(days),
		datepicker.WithMaxSize(cfg.Picker.MaxSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar window: %w", err)
	}
	return window, nil
}

// Calendar returns the holiday calendar
func (m *Manager) Calendar() calendar.Calendar {
	return m.calendar
}

// Periods returns the loaded holiday periods calendar, if one is configured
func (m *Manager) Periods() (*calendar.PeriodCalendar, bool) {
	switch c := m.calendar.(type) {
	case *calendar.PeriodCalendar:
		return c, true
	case *calendar.CompositeCalendar:
		pc, ok := c.Primary().(*calendar.PeriodCalendar)
		return pc, ok
	}
	return nil, false
}

// Selection returns the current range selection
func (m *Manager) Selection() *datepicker.Selection {
	return m.selection
}

// Months returns the months currently in the window
func (m *Manager) Months() []datepicker.CalendarMonth {
	return m.scroller.Months()
}

// DaysOfWeek returns the configured column order
func (m *Manager) DaysOfWeek() []time.Weekday {
	days, _ := m.config.Picker.GetDaysOfWeek()
	return days
}

// Scroll extends the window count months toward edge
func (m *Manager) Scroll(edge datepicker.Edge, count int) ([]datepicker.CalendarMonth, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}

	generated := make([]datepicker.CalendarMonth, 0, count)
	for i := 0; i < count; i++ {
		month, ok := m.scroller.Reached(edge)
		if !ok {
			break
		}
		generated = append(generated, month)
	}

	m.logger.Info("Calendar scrolled",
		zap.String("edge", edge.String()),
		zap.Int("generated", len(generated)))

	return generated, nil
}

// OnScroll handles a scroll callback for the visible month indexes [first, last].
// It extends the window when the visible range is within the configured buffer of an end.
func (m *Manager) OnScroll(first, last int) (datepicker.Edge, error) {
	total := len(m.scroller.Months())
	edge, err := datepicker.DetectEdge(first, last, total, m.config.Picker.ScrollBuffer)
	if err != nil {
		return datepicker.EdgeNone, fmt.Errorf("failed to detect scroll edge: %w", err)
	}
	m.scroller.Reached(edge)
	return edge, nil
}

// Reveal extends the window until it contains date's month
func (m *Manager) Reveal(date dateutil.Date) datepicker.CalendarMonth {
	target := date.YearMonth()
	for {
		if month, ok := m.scroller.Find(date); ok {
			return month
		}
		first, _ := m.scroller.Bounds()
		edge := datepicker.EdgeBottom
		if target.Before(first) {
			edge = datepicker.EdgeTop
		}
		m.scroller.Reached(edge)
	}
}

// Select applies a tap on date to the selection, revealing its month first
func (m *Manager) Select(date dateutil.Date) {
	month := m.Reveal(date)
	m.selection.SelectDate(date)

	start, _ := m.selection.Start()
	fields := []zap.Field{
		zap.Stringer("date", date),
		zap.Int("month_id", month.ID),
		zap.Stringer("start", start),
	}
	if end, ok := m.selection.End(); ok {
		fields = append(fields, zap.Stringer("end", end), zap.Int("days", m.selection.Days()))
	}
	m.logger.Info("Date selected", fields...)
}

// Save persists the window and selection
func (m *Manager) Save() error {
	window := m.scroller.Snapshot()
	selection := m.selection.Snapshot()
	if err := m.store.Save(&state.PickerState{Window: &window, Selection: &selection}); err != nil {
		return fmt.Errorf("failed to save picker state: %w", err)
	}
	return nil
}

// Reset clears the selection, regenerates the window and removes the saved state
func (m *Manager) Reset() error {
	window, err := openWindow(m.config, &state.PickerState{}, m.logger)
	if err != nil {
		return err
	}
	m.scroller = datepicker.NewScroller(window, m.logger)
	m.selection = datepicker.NewSelection(m.config.Picker.GetToday())

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear picker state: %w", err)
	}
	return nil
}
