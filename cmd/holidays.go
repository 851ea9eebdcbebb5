package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docbundle/internal/calendar"
	"github.com/ziadkadry99/docbundle/internal/holiday"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List Japanese national holidays",
	Long: `Lists the holidays the calendar widget uses for a year or a range of
years, as text, JSON, YAML or an iCalendar file.`,
	RunE: runHolidays,
}

func init() {
	holidaysCmd.Flags().Int("year", 0, "first year (default: current)")
	holidaysCmd.Flags().Int("to", 0, "last year, inclusive (default: same as --year)")
	holidaysCmd.Flags().String("format", "text", "output format: text, json, yaml or ics")
	holidaysCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(holidaysCmd)
}

func runHolidays(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt("year")
	if from == 0 {
		from = time.Now().Year()
	}
	to, _ := cmd.Flags().GetInt("to")
	if to == 0 {
		to = from
	}
	if to < from {
		return fmt.Errorf("--to %d is before --year %d", to, from)
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	list := holiday.Span(from, to).Sorted()

	w, closeOut, err := openOutput(outPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := writeHolidays(w, list, format, from, to); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func writeHolidays(w io.Writer, list []holiday.Holiday, format string, from, to int) error {
	switch format {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, h := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Date.Key(), calendar.WeekdayHeaders[h.Date.Weekday()], h.Name)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	case "ics":
		name := fmt.Sprintf("日本の祝日 %d", from)
		if to != from {
			name = fmt.Sprintf("日本の祝日 %d-%d", from, to)
		}
		return holiday.WriteICS(w, list, holiday.ICSOptions{CalendarName: name})
	default:
		return fmt.Errorf("unknown format %q: must be text, json, yaml or ics", format)
	}
}
