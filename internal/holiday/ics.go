package holiday

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ICSOptions controls the iCalendar export.
type ICSOptions struct {
	CalendarName string
	ProductID    string
	Timezone     string
	// Stamp is written as DTSTAMP on every event. Zero means time.Now.
	Stamp time.Time
}

// DefaultProductID is the PRODID used when ICSOptions.ProductID is empty.
const DefaultProductID = "-//docbundle//Japanese Holidays//JA"

// EventUID returns the UID of the holiday event on d. It only depends on
// the date, so re-exported calendars update existing events.
func EventUID(d Date) string {
	return d.Key() + "@docbundle"
}

// WriteICS writes holidays as all-day events of an iCalendar file.
func WriteICS(w io.Writer, holidays []Holiday, opts ICSOptions) error {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Timezone == "" {
		opts.Timezone = "Asia/Tokyo"
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetProductId(opts.ProductID)
	cal.SetCalscale("GREGORIAN")
	if opts.CalendarName != "" {
		cal.SetXWRCalName(opts.CalendarName)
	}
	cal.SetXWRTimezone(opts.Timezone)

	for _, h := range holidays {
		event := cal.AddEvent(EventUID(h.Date))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(h.Date.Time())
		event.SetAllDayEndAt(h.Date.AddDays(1).Time())
		event.SetSummary(h.Name)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
