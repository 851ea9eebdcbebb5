// Package calendar builds month grids annotated with Japanese holidays.
package calendar

import (
	"fmt"
	"time"

	"github.com/ziadkadry99/docbundle/internal/holiday"
)

// WeekendKind classifies a day for weekend coloring.
type WeekendKind int

const (
	WeekendNone WeekendKind = iota
	WeekendSaturday
	WeekendSunday
)

func (k WeekendKind) String() string {
	switch k {
	case WeekendSaturday:
		return "saturday"
	case WeekendSunday:
		return "sunday"
	default:
		return ""
	}
}

// Cursor is the month currently on display.
type Cursor struct {
	Year  int
	Month time.Month
}

// NewCursor returns a cursor on the month containing today.
func NewCursor(today holiday.Date) *Cursor {
	return &Cursor{Year: today.Year, Month: today.Month}
}

// ChangeMonth moves the cursor by delta months in either direction,
// rolling the year over as needed.
func (c *Cursor) ChangeMonth(delta int) {
	months := c.Year*12 + int(c.Month-1) + delta
	year := months / 12
	month := months % 12
	if month < 0 {
		month += 12
		year--
	}
	c.Year = year
	c.Month = time.Month(month + 1)
}

// Title returns the heading shown above the grid, e.g. "2026年 10月".
func (c Cursor) Title() string {
	return fmt.Sprintf("%d年 %d月", c.Year, int(c.Month))
}

// DayCell is one square of the month grid.
type DayCell struct {
	Date    holiday.Date
	Day     int
	InMonth bool
	Today   bool
	Weekend WeekendKind
	Holiday string
}

// IsHoliday reports whether the cell carries a holiday name.
func (c DayCell) IsHoliday() bool {
	return c.Holiday != ""
}

// Class returns the CSS classes the bundled page uses for the cell.
func (c DayCell) Class() string {
	class := "day"
	if !c.InMonth {
		class += " other-month"
	}
	if c.IsHoliday() {
		class += " holiday"
	} else if c.Weekend != WeekendNone {
		class += " " + c.Weekend.String()
	}
	if c.Today {
		class += " today"
	}
	return class
}

// RenderMonth lays out the month under the cursor as complete weeks starting
// on Sunday. Padding cells hold the neighbouring months' days and are looked
// up in holidays with their own month and year.
func RenderMonth(c Cursor, today holiday.Date, holidays holiday.Set) []DayCell {
	first := holiday.NewDate(c.Year, c.Month, 1)
	leading := int(first.Weekday())
	daysInMonth := holiday.DaysIn(c.Year, c.Month)
	trailing := (7 - (leading+daysInMonth)%7) % 7

	cells := make([]DayCell, 0, leading+daysInMonth+trailing)

	for i := leading; i > 0; i-- {
		cells = append(cells, padding(first.AddDays(-i), holidays))
	}

	for day := 1; day <= daysInMonth; day++ {
		d := holiday.Date{Year: c.Year, Month: c.Month, Day: day}
		cell := DayCell{
			Date:    d,
			Day:     day,
			InMonth: true,
			Today:   d == today,
		}
		if name, ok := holidays.Name(d); ok {
			cell.Holiday = name
		} else {
			cell.Weekend = weekendOf(d.Weekday())
		}
		cells = append(cells, cell)
	}

	last := holiday.Date{Year: c.Year, Month: c.Month, Day: daysInMonth}
	for i := 1; i <= trailing; i++ {
		cells = append(cells, padding(last.AddDays(i), holidays))
	}

	return cells
}

// Month renders the month under the cursor with holidays from the cache,
// covering the years on either side for the padding cells.
func Month(c Cursor, today holiday.Date, cache *holiday.Cache) []DayCell {
	return RenderMonth(c, today, cache.Window(c.Year))
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []DayCell) [][]DayCell {
	weeks := make([][]DayCell, 0, len(cells)/7)
	for i := 0; i+7 <= len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

func padding(d holiday.Date, holidays holiday.Set) DayCell {
	name, _ := holidays.Name(d)
	return DayCell{Date: d, Day: d.Day, Holiday: name}
}

func weekendOf(wd time.Weekday) WeekendKind {
	switch wd {
	case time.Saturday:
		return WeekendSaturday
	case time.Sunday:
		return WeekendSunday
	default:
		return WeekendNone
	}
}
