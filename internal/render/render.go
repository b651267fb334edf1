// Package render draws calendar months for the terminal.
//
// Each day occupies a four character cell: a left marker, the two digit day
// and a right marker. Markers connect the cells of a selected range so that a
// row reads like a highlighted bar:
//
//	[05==06==07==08]
//
// Range rows are closed with "(" and ")" where the range wraps to the
// next or previous week row.
package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/internal/datepicker"
	"github.com/username/holidays-picker/pkg/dateutil"
)

const cellWidth = 4

// Styles holds the lipgloss styles used for each cell kind
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Endpoint lipgloss.Style
	InRange  lipgloss.Style
	Holiday  lipgloss.Style
	Note     lipgloss.Style
}

// DefaultStyles returns colored styles, or PlainStyles when color is disabled
func DefaultStyles() Styles {
	if !colorEnabled() {
		return PlainStyles()
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Header:   lipgloss.NewStyle().Faint(true),
		Day:      lipgloss.NewStyle(),
		Today:    lipgloss.NewStyle().Underline(true),
		Endpoint: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		InRange:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Holiday:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Note:     lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles that add no escape sequences
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Header:   plain,
		Day:      plain,
		Today:    plain,
		Endpoint: plain,
		InRange:  plain,
		Holiday:  plain,
		Note:     plain,
	}
}

// colorEnabled reports whether color output is permitted.
// It returns false when NO_COLOR is set or stdout is not a TTY.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// Renderer draws months with range highlighting
type Renderer struct {
	Styles     Styles
	DaysOfWeek []time.Weekday
	Holidays   calendar.Calendar
	// WeekdayLabel and MonthTitle supply localized names
	WeekdayLabel func(time.Weekday) string
	MonthTitle   func(dateutil.YearMonth) string
}

// NewRenderer creates a renderer with English labels
func NewRenderer(daysOfWeek []time.Weekday, holidays calendar.Calendar, styles Styles) *Renderer {
	if holidays == nil {
		holidays = calendar.NoHolidays{}
	}
	return &Renderer{
		Styles:       styles,
		DaysOfWeek:   daysOfWeek,
		Holidays:     holidays,
		WeekdayLabel: EnglishWeekday,
		MonthTitle:   EnglishMonth,
	}
}

// EnglishWeekday returns a two letter weekday label
func EnglishWeekday(d time.Weekday) string {
	return d.String()[:2]
}

// EnglishMonth returns e.g. "January 2024"
func EnglishMonth(m dateutil.YearMonth) string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Header returns the weekday label row
func (r *Renderer) Header() string {
	var b strings.Builder
	for _, d := range r.DaysOfWeek {
		b.WriteString(fmt.Sprintf(" %-2s ", r.WeekdayLabel(d)))
	}
	return r.Styles.Header.Render(strings.TrimRight(b.String(), " "))
}

// Month renders a month title, its week rows and any holiday notes
func (r *Renderer) Month(month datepicker.CalendarMonth, sel *datepicker.Selection) string {
	var b strings.Builder
	b.WriteString(r.Styles.Title.Render(r.MonthTitle(month.Month)))
	b.WriteString("\n")

	var notes []string
	seen := map[string]bool{}
	for _, week := range month.Weeks {
		var row strings.Builder
		row.WriteString(strings.Repeat(" ", week.FirstDayIndex*cellWidth))
		for _, day := range week.Days {
			holiday, isHoliday := r.Holidays.HolidayAt(day.Date)
			row.WriteString(r.cell(day, sel, isHoliday))
			if isHoliday && !seen[holiday.Name] {
				seen[holiday.Name] = true
				notes = append(notes, fmt.Sprintf("%s %s", day.Date, holiday.Name))
			}
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteString("\n")
	}

	for _, note := range notes {
		b.WriteString(r.Styles.Note.Render("  * " + note))
		b.WriteString("\n")
	}

	return b.String()
}

// Months renders several months separated by blank lines, under one header
func (r *Renderer) Months(months []datepicker.CalendarMonth, sel *datepicker.Selection) string {
	parts := make([]string, 0, len(months))
	for _, m := range months {
		parts = append(parts, r.Month(m, sel))
	}
	return r.Header() + "\n" + strings.Join(parts, "\n")
}

func (r *Renderer) cell(day datepicker.CalendarDay, sel *datepicker.Selection, isHoliday bool) string {
	left, right := " ", " "
	style := r.Styles.Day
	_, hasEnd := sel.End()

	switch {
	case sel.IsStartDate(day.Date):
		left, right = "[", "]"
		if hasEnd && !day.IsLastWeekDay {
			right = "="
		}
		style = r.Styles.Endpoint
	case sel.IsEndDate(day.Date):
		left, right = "=", "]"
		if day.IsFirstWeekDay {
			left = "["
		}
		style = r.Styles.Endpoint
	case sel.IsInExclusiveRange(day.Date):
		left, right = "=", "="
		if day.IsFirstWeekDay {
			left = "("
		}
		if day.IsLastWeekDay {
			right = ")"
		}
		style = r.Styles.InRange
	case sel.IsToday(day.Date):
		right = "*"
		style = r.Styles.Today
	case isHoliday:
		right = "h"
		style = r.Styles.Holiday
	}

	return left + style.Render(fmt.Sprintf("%02d", day.Date.Day)) + right
}
