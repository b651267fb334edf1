package datepicker

import "github.com/username/holidays-picker/pkg/dateutil"

// CalendarDay is a single day cell of a month grid
type CalendarDay struct {
	Date dateutil.Date `json:"date"`
	// IsFirstWeekDay is set on the first day rendered in its week row
	IsFirstWeekDay bool `json:"is_first_week_day"`
	// IsLastWeekDay is set on the last day rendered in its week row
	IsLastWeekDay bool `json:"is_last_week_day"`
}

// CalendarWeek is one row of a month grid
type CalendarWeek struct {
	Days          []CalendarDay `json:"days"`
	FirstDayIndex int           `json:"first_day_index"` // column of Days[0]
	LastDayIndex  int           `json:"last_day_index"`  // column of the last day
	TotalSize     int           `json:"total_size"`
}

// CalendarMonth is a generated month with a rendering key unique within its window
type CalendarMonth struct {
	Weeks []CalendarWeek     `json:"weeks"`
	Month dateutil.YearMonth `json:"month"`
	ID    int                `json:"id"`
}

// FirstDayIndex returns the column where day 1 falls
func (m CalendarMonth) FirstDayIndex() int {
	if len(m.Weeks) == 0 {
		return 0
	}
	return m.Weeks[0].FirstDayIndex
}

// LastDayIndex returns the column where the last day of the month falls
func (m CalendarMonth) LastDayIndex() int {
	if len(m.Weeks) == 0 {
		return 0
	}
	return m.Weeks[len(m.Weeks)-1].LastDayIndex
}

// Days returns the days of all weeks in order
func (m CalendarMonth) Days() []CalendarDay {
	days := make([]CalendarDay, 0, m.Month.LengthOfMonth())
	for _, week := range m.Weeks {
		days = append(days, week.Days...)
	}
	return days
}

// DayAt returns the i-th day of the month counting from zero
func (m CalendarMonth) DayAt(i int) (CalendarDay, bool) {
	for _, week := range m.Weeks {
		if i < len(week.Days) {
			if i < 0 {
				break
			}
			return week.Days[i], true
		}
		i -= len(week.Days)
	}
	return CalendarDay{}, false
}

// IndexOf returns the zero-based position of date within the month, or -1
func (m CalendarMonth) IndexOf(date dateutil.Date) int {
	if date.YearMonth() != m.Month {
		return -1
	}
	i := 0
	for _, week := range m.Weeks {
		for _, day := range week.Days {
			if day.Date == date {
				return i
			}
			i++
		}
	}
	return -1
}

// generateWeeks lays out month into rows of weekSize columns with day 1 at startIndex
func generateWeeks(month dateutil.YearMonth, startIndex, weekSize int) []CalendarWeek {
	length := month.LengthOfMonth()
	nbWeeks := (length + startIndex + weekSize - 1) / weekSize
	lastColumn := weekSize - 1

	weeks := make([]CalendarWeek, 0, nbWeeks)
	nextDay := 1

	// A month fitting in a single row stops short of the last column.
	firstSize := min(weekSize-startIndex, length)
	days, nextDay := weekDays(month, nextDay, firstSize)
	weeks = append(weeks, CalendarWeek{
		Days:          days,
		FirstDayIndex: startIndex,
		LastDayIndex:  startIndex + firstSize - 1,
		TotalSize:     weekSize,
	})
	if nbWeeks <= 1 {
		return weeks
	}

	for w := 1; w < nbWeeks-1; w++ {
		days, nextDay = weekDays(month, nextDay, weekSize)
		weeks = append(weeks, CalendarWeek{
			Days:          days,
			FirstDayIndex: 0,
			LastDayIndex:  lastColumn,
			TotalSize:     weekSize,
		})
	}

	lastSize := length - nextDay + 1
	days, _ = weekDays(month, nextDay, lastSize)
	weeks = append(weeks, CalendarWeek{
		Days:          days,
		FirstDayIndex: 0,
		LastDayIndex:  lastSize - 1,
		TotalSize:     weekSize,
	})

	return weeks
}

func weekDays(month dateutil.YearMonth, from, count int) ([]CalendarDay, int) {
	days := make([]CalendarDay, count)
	for i := range days {
		days[i] = CalendarDay{
			Date:           month.AtDay(from + i),
			IsFirstWeekDay: i == 0,
			IsLastWeekDay:  i == count-1,
		}
	}
	return days, from + count
}
