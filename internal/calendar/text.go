package calendar

import (
	"bufio"
	"fmt"
	"io"
)

// WeekdayHeaders are the column headings of a grid, Sunday first.
var WeekdayHeaders = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// WriteText prints a month grid for the terminal. Holidays are marked with
// '*', today is bracketed and days of the neighbouring months are shown in
// parentheses. Holidays of the displayed month are listed under the grid.
func WriteText(w io.Writer, c Cursor, cells []DayCell) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", c.Title())
	for _, h := range WeekdayHeaders {
		// Full-width headers occupy two columns.
		fmt.Fprintf(bw, "  %s ", h)
	}
	bw.WriteString("\n")

	for _, week := range Weeks(cells) {
		for _, cell := range week {
			fmt.Fprintf(bw, "%5s", cellText(cell))
		}
		bw.WriteString("\n")
	}

	first := true
	for _, cell := range cells {
		if !cell.InMonth || !cell.IsHoliday() {
			continue
		}
		if first {
			bw.WriteString("\n")
			first = false
		}
		fmt.Fprintf(bw, "%s  %s\n", cell.Date.Key(), cell.Holiday)
	}

	return bw.Flush()
}

func cellText(cell DayCell) string {
	s := fmt.Sprintf("%d", cell.Day)
	switch {
	case !cell.InMonth:
		s = "(" + s + ")"
	case cell.Today:
		s = "[" + s + "]"
	}
	if cell.IsHoliday() {
		s += "*"
	} else {
		s += " "
	}
	return s
}
