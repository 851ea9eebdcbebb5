package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docbundle/internal/calendar"
	"github.com/ziadkadry99/docbundle/internal/holiday"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a month calendar with Japanese holidays",
	Long: `Prints the month grid the bundle's calendar widget shows. Holidays are
marked with '*' and today is bracketed. With --interactive, step through
months from the terminal.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().Int("year", 0, "year to show (default: current)")
	calendarCmd.Flags().Int("month", 0, "month to show, 1-12 (default: current)")
	calendarCmd.Flags().String("today", "", "date treated as today (YYYY-MM-DD)")
	calendarCmd.Flags().BoolP("interactive", "i", false, "navigate months interactively")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	todayFlag, _ := cmd.Flags().GetString("today")
	day, err := today(todayFlag)
	if err != nil {
		return err
	}

	cursor := calendar.NewCursor(day)
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		cursor.Year = year
	}
	if month, _ := cmd.Flags().GetInt("month"); month != 0 {
		if month < 1 || month > 12 {
			return fmt.Errorf("invalid month %d: must be 1-12", month)
		}
		cursor.Month = time.Month(month)
	}

	cache := holiday.NewCache()
	out := cmd.OutOrStdout()

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return printMonth(out, *cursor, day, cache)
	}
	return navigateCalendar(out, cursor, day, cache)
}

func printMonth(w io.Writer, c calendar.Cursor, day holiday.Date, cache *holiday.Cache) error {
	return calendar.WriteText(w, c, calendar.Month(c, day, cache))
}

type calendarAction struct {
	label string
	delta int
	reset bool
	quit  bool
}

var calendarActions = []calendarAction{
	{label: "Next month", delta: 1},
	{label: "Previous month", delta: -1},
	{label: "Next year", delta: 12},
	{label: "Previous year", delta: -12},
	{label: "This month", reset: true},
	{label: "Quit", quit: true},
}

// navigateCalendar redraws the month after every move until the user quits.
func navigateCalendar(w io.Writer, cursor *calendar.Cursor, day holiday.Date, cache *holiday.Cache) error {
	labels := make([]string, len(calendarActions))
	for i, a := range calendarActions {
		labels[i] = a.label
	}

	for {
		if err := printMonth(w, *cursor, day, cache); err != nil {
			return err
		}
		fmt.Fprintln(w)

		prompt := promptui.Select{
			Label: cursor.Title(),
			Items: labels,
			Size:  len(labels),
		}
		idx, _, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("calendar prompt: %w", err)
		}

		action := calendarActions[idx]
		switch {
		case action.quit:
			return nil
		case action.reset:
			*cursor = *calendar.NewCursor(day)
		default:
			cursor.ChangeMonth(action.delta)
		}
	}
}
