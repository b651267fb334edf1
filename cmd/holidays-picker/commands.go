package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/internal/datepicker"
	"github.com/username/holidays-picker/internal/render"
	"github.com/username/holidays-picker/internal/session"
	"github.com/username/holidays-picker/pkg/dateutil"
	"go.uber.org/zap"
)

func formatDay(d dateutil.Date) string {
	return d.Time().Format("Jan 2, 2006")
}

func printSelection(manager *session.Manager) {
	sel := manager.Selection()
	fmt.Printf("\nSelection: %s", sel.Label(formatDay, "Start Date"))
	if sel.IsValidRange() {
		fmt.Printf(" (%d days)", sel.Days())
	}
	fmt.Println()
}

func newRenderer(manager *session.Manager) *render.Renderer {
	return render.NewRenderer(manager.DaysOfWeek(), manager.Calendar(), render.DefaultStyles())
}

func showCmd() *cobra.Command {
	var monthStr string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the months currently in the calendar window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			months := manager.Months()
			if monthStr != "" {
				month, err := dateutil.ParseYearMonth(monthStr)
				if err != nil {
					return fmt.Errorf("invalid month: %w", err)
				}
				months = []datepicker.CalendarMonth{manager.Reveal(month.AtDay(1))}
				if err := manager.Save(); err != nil {
					return err
				}
			}

			fmt.Print(newRenderer(manager).Months(months, manager.Selection()))
			printSelection(manager)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthStr, "month", "", "Show a single month (YYYY-MM), extending the window to reach it")

	return cmd
}

func scrollCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:       "scroll forward|backward",
		Short:     "Extend the calendar window by whole months",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"forward", "backward"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var edge datepicker.Edge
			switch args[0] {
			case "forward":
				edge = datepicker.EdgeBottom
			case "backward":
				edge = datepicker.EdgeTop
			default:
				return fmt.Errorf("unknown scroll direction %q, want forward or backward", args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			generated, err := manager.Scroll(edge, count)
			if err != nil {
				return err
			}
			if err := manager.Save(); err != nil {
				return err
			}

			if edge == datepicker.EdgeTop {
				// Generated backward, print in calendar order.
				for i, j := 0, len(generated)-1; i < j; i, j = i+1, j-1 {
					generated[i], generated[j] = generated[j], generated[i]
				}
			}
			fmt.Print(newRenderer(manager).Months(generated, manager.Selection()))

			months := manager.Months()
			fmt.Printf("\nWindow: %s .. %s (%d of %d months)\n",
				months[0].Month, months[len(months)-1].Month, len(months), cfg.Picker.MaxSize)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of months to generate")

	return cmd
}

func selectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select DATE [DATE...]",
		Short: "Tap one or more dates to pick a holiday range",
		Long: "Each date is applied in order: the first tap sets the start, a later date sets the end, " +
			"and any other tap starts a new range.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates := make([]dateutil.Date, 0, len(args))
			for _, arg := range args {
				d, err := dateutil.ParseDate(arg)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", arg, err)
				}
				dates = append(dates, d)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			for _, d := range dates {
				manager.Select(d)
			}
			if err := manager.Save(); err != nil {
				return err
			}

			sel := manager.Selection()
			start, _ := sel.Start()
			months := []datepicker.CalendarMonth{manager.Reveal(start)}
			if end, ok := sel.End(); ok {
				for m := start.YearMonth().AddMonths(1); !end.YearMonth().Before(m); m = m.AddMonths(1) {
					months = append(months, manager.Reveal(m.AtDay(1)))
				}
			}

			fmt.Print(newRenderer(manager).Months(months, sel))
			printSelection(manager)
			return nil
		},
	}

	return cmd
}

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List holidays in the calendar window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			found := collectHolidays(manager.Months(), manager.Calendar())
			months := manager.Months()
			fmt.Printf("Holidays %s .. %s\n", months[0].Month, months[len(months)-1].Month)
			fmt.Println(strings.Repeat("═", 40))
			if len(found) == 0 {
				fmt.Println("  No holidays")
			}
			for _, h := range found {
				span := h.From.String()
				if h.To != h.From {
					span += " .. " + h.To.String()
				}
				fmt.Printf("  %-24s %-8s %s\n", span, h.Source, h.Name)
			}

			if periods, ok := manager.Periods(); ok {
				today := cfg.Picker.GetToday()
				if prev, ok := periods.PreviousBefore(today); ok {
					fmt.Printf("\nPrevious period: %s (%s .. %s)\n", prev.Name, prev.From, prev.To)
				}
				if next, ok := periods.NextAfter(today); ok {
					fmt.Printf("Next period:     %s (%s .. %s), in %d days\n",
						next.Name, next.From, next.To, today.DaysUntil(next.From))
				}
			}

			return nil
		},
	}

	return cmd
}

// collectHolidays merges consecutive days of the same holiday into one span
func collectHolidays(months []datepicker.CalendarMonth, cal calendar.Calendar) []calendar.Holiday {
	var found []calendar.Holiday
	for _, month := range months {
		for _, day := range month.Days() {
			h, ok := cal.HolidayAt(day.Date)
			if !ok {
				continue
			}
			if n := len(found); n > 0 && found[n-1].Name == h.Name && found[n-1].To.AddDays(1) == day.Date {
				found[n-1].To = day.Date
				continue
			}
			found = append(found, calendar.Holiday{Name: h.Name, From: day.Date, To: day.Date, Source: h.Source})
		}
	}
	return found
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the selection and the saved calendar window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}
			if err := manager.Reset(); err != nil {
				return err
			}

			logger.Info("Picker reset", zap.String("state_file", cfg.State.File))
			fmt.Println("✅ Picker state cleared")
			return nil
		},
	}

	return cmd
}
