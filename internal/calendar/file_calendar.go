package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
)

// PeriodCalendar implements Calendar using holiday periods from a local text file
type PeriodCalendar struct {
	filePath string
	logger   *zap.Logger
	periods  []Holiday // sorted by From
}

// NewPeriodCalendar creates a new PeriodCalendar instance
func NewPeriodCalendar(filePath string, logger *zap.Logger) *PeriodCalendar {
	return &PeriodCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holiday periods from file
func (pc *PeriodCalendar) Load() error {
	file, err := os.Open(pc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	if err := pc.Read(file); err != nil {
		return err
	}

	pc.logger.Info("Holidays file loaded",
		zap.String("file", pc.filePath),
		zap.Int("periods", len(pc.periods)))

	return nil
}

// Read parses holiday periods, one per line
func (pc *PeriodCalendar) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var periods []Holiday

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD YYYY-MM-DD [name]
		// Example: 2025-07-14 2025-08-01 Summer break
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			pc.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		from, err := dateutil.ParseDate(parts[0])
		if err != nil {
			pc.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}
		to, err := dateutil.ParseDate(parts[1])
		if err != nil {
			pc.logger.Warn("Failed to parse date", zap.String("date", parts[1]), zap.Error(err))
			continue
		}
		if to.Before(from) {
			pc.logger.Warn("Holiday period ends before it starts", zap.String("line", line))
			continue
		}

		name := "Holidays"
		if len(parts) == 3 {
			name = strings.TrimSpace(parts[2])
		}

		periods = append(periods, Holiday{
			Name:   name,
			From:   from,
			To:     to,
			Source: SourcePeriod,
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holidays file: %w", err)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].From.Before(periods[j].From)
	})
	pc.periods = periods

	return nil
}

// Periods returns the loaded periods ordered by start date
func (pc *PeriodCalendar) Periods() []Holiday {
	return append([]Holiday(nil), pc.periods...)
}

// HolidayAt returns the period covering date
func (pc *PeriodCalendar) HolidayAt(date dateutil.Date) (*Holiday, bool) {
	for i := range pc.periods {
		if pc.periods[i].Contains(date) {
			h := pc.periods[i]
			return &h, true
		}
	}
	return nil, false
}

// NextAfter returns the first period starting after date
func (pc *PeriodCalendar) NextAfter(date dateutil.Date) (*Holiday, bool) {
	for i := range pc.periods {
		if pc.periods[i].From.After(date) {
			h := pc.periods[i]
			return &h, true
		}
	}
	return nil, false
}

// PreviousBefore returns the latest-starting period that ended before date
func (pc *PeriodCalendar) PreviousBefore(date dateutil.Date) (*Holiday, bool) {
	for i := len(pc.periods) - 1; i >= 0; i-- {
		if pc.periods[i].To.Before(date) {
			h := pc.periods[i]
			return &h, true
		}
	}
	return nil, false
}
