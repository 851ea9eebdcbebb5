// Package holiday computes Japanese national holidays.
//
// The rules are the ones the documentation bundle's calendar widget has
// always used: a fixed-date table, the Happy Monday holidays, the equinox
// approximation formulas, substitute holidays and the citizens' holiday
// between Respect for the Aged Day and Autumnal Equinox Day.
package holiday

import (
	"math"
	"sort"
	"time"
)

// Holiday names as displayed in the calendar.
const (
	NewYearsDay          = "元日"
	ComingOfAgeDay       = "成人の日"
	FoundationDay        = "建国記念の日"
	EmperorsBirthday     = "天皇誕生日"
	VernalEquinoxDay     = "春分の日"
	ShowaDay             = "昭和の日"
	ConstitutionDay      = "憲法記念日"
	GreeneryDay          = "みどりの日"
	ChildrensDay         = "こどもの日"
	MarineDay            = "海の日"
	MountainDay          = "山の日"
	RespectForTheAgedDay = "敬老の日"
	AutumnalEquinoxDay   = "秋分の日"
	SportsDay            = "スポーツの日"
	CultureDay           = "文化の日"
	LaborThanksgivingDay = "勤労感謝の日"
	SubstituteHoliday    = "振替休日"
	CitizensHoliday      = "国民の休日"
)

// Set maps date keys (YYYY-MM-DD) to holiday names.
type Set map[string]string

// Holiday is a single named holiday.
type Holiday struct {
	Date Date   `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

// FixedRule is a holiday on the same date every year.
type FixedRule struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Name  string     `json:"name"`
}

var fixedHolidays = []FixedRule{
	{time.January, 1, NewYearsDay},
	{time.February, 11, FoundationDay},
	{time.February, 23, EmperorsBirthday},
	{time.April, 29, ShowaDay},
	{time.May, 3, ConstitutionDay},
	{time.May, 4, GreeneryDay},
	{time.May, 5, ChildrensDay},
	{time.August, 11, MountainDay},
	{time.November, 3, CultureDay},
	{time.November, 23, LaborThanksgivingDay},
}

// MondayRule is a holiday on the nth Monday of a month.
type MondayRule struct {
	Month time.Month `json:"month"`
	Nth   int        `json:"nth"`
	Name  string     `json:"name"`
}

var happyMondays = []MondayRule{
	{time.January, 2, ComingOfAgeDay},
	{time.July, 3, MarineDay},
	{time.September, 3, RespectForTheAgedDay},
	{time.October, 2, SportsDay},
}

// Equinox formula constants: day = floor(base + rate*(y-1980) - floor((y-1980)/4)).
const (
	VernalBase   = 20.8431
	AutumnalBase = 23.2488
	EquinoxRate  = 0.242194
	EquinoxEpoch = 1980
)

// Rules is the rule table Compute applies, in a form other renderers of
// the same calendar can evaluate.
type Rules struct {
	Fixed        []FixedRule  `json:"fixed"`
	Mondays      []MondayRule `json:"mondays"`
	VernalBase   float64      `json:"vernalBase"`
	AutumnalBase float64      `json:"autumnalBase"`
	Rate         float64      `json:"rate"`
	Epoch        int          `json:"epoch"`
	Vernal       string       `json:"vernal"`
	Autumnal     string       `json:"autumnal"`
	Substitute   string       `json:"substitute"`
	Citizens     string       `json:"citizens"`
}

// RuleTable returns a copy of the rules Compute applies.
func RuleTable() Rules {
	return Rules{
		Fixed:        append([]FixedRule(nil), fixedHolidays...),
		Mondays:      append([]MondayRule(nil), happyMondays...),
		VernalBase:   VernalBase,
		AutumnalBase: AutumnalBase,
		Rate:         EquinoxRate,
		Epoch:        EquinoxEpoch,
		Vernal:       VernalEquinoxDay,
		Autumnal:     AutumnalEquinoxDay,
		Substitute:   SubstituteHoliday,
		Citizens:     CitizensHoliday,
	}
}

// Compute returns every holiday of the given year. It is a pure function of
// year: any value, however far outside the range the equinox formulas were
// fitted for, yields a result. Far from 1980 the equinox formulas produce
// day numbers outside their month; a date that normalizes into another
// year is dropped, so every key of the result lies in year.
func Compute(year int) Set {
	holidays := make(Set)
	dates := make(map[string]Date)
	add := func(d Date, name string) {
		if d.Year != year {
			return
		}
		holidays[d.Key()] = name
		dates[d.Key()] = d
	}

	for _, f := range fixedHolidays {
		add(NewDate(year, f.Month, f.Day), f.Name)
	}

	for _, m := range happyMondays {
		add(NewDate(year, m.Month, NthMonday(year, m.Month, m.Nth)), m.Name)
	}

	autumnal := NewDate(year, time.September, AutumnalEquinox(year))
	add(NewDate(year, time.March, VernalEquinox(year)), VernalEquinoxDay)
	add(autumnal, AutumnalEquinoxDay)

	// Substitute holidays only look at the holidays above; the lookahead
	// also skips substitutes assigned earlier in this pass.
	sundays := make([]Date, 0, 3)
	for _, d := range dates {
		if d.Weekday() == time.Sunday {
			sundays = append(sundays, d)
		}
	}
	sort.Slice(sundays, func(i, j int) bool { return sundays[i].Before(sundays[j]) })

	substitutes := make(Set)
	for _, sunday := range sundays {
		next := sunday.AddDays(1)
		for {
			key := next.Key()
			_, taken := holidays[key]
			_, assigned := substitutes[key]
			if !taken && !assigned {
				break
			}
			next = next.AddDays(1)
		}
		if next.Year == year {
			substitutes[next.Key()] = SubstituteHoliday
		}
	}
	holidays.Merge(substitutes)

	keiro := NewDate(year, time.September, NthMonday(year, time.September, 3))
	if autumnal.Year == year && daysBetween(keiro, autumnal) == 2 {
		middle := keiro.AddDays(1).Key()
		if _, ok := holidays[middle]; !ok {
			holidays[middle] = CitizensHoliday
		}
	}

	return holidays
}

// Window returns the holidays of year and of the years on either side, so a
// month view can resolve holidays shown in its padding cells.
func Window(year int) Set {
	return Span(year-1, year+1)
}

// Span returns the holidays of every year from from to to, inclusive.
func Span(from, to int) Set {
	holidays := make(Set)
	for y := from; y <= to; y++ {
		holidays.Merge(Compute(y))
	}
	return holidays
}

// NthMonday returns the day of month of the nth Monday of the month.
func NthMonday(year int, month time.Month, nth int) int {
	first := NewDate(year, month, 1).Weekday()
	firstMonday := 1
	if first != time.Monday {
		firstMonday = 1 + (8-int(first))%7
	}
	return firstMonday + (nth-1)*7
}

// VernalEquinox returns the March day of Vernal Equinox Day.
func VernalEquinox(year int) int {
	return equinoxDay(VernalBase, year)
}

// AutumnalEquinox returns the September day of Autumnal Equinox Day.
func AutumnalEquinox(year int) int {
	return equinoxDay(AutumnalBase, year)
}

// equinoxDay evaluates the empirical equinox formula. Both floors are
// mathematical floors, including for years before 1980.
func equinoxDay(base float64, year int) int {
	y := float64(year - EquinoxEpoch)
	return int(math.Floor(base + EquinoxRate*y - math.Floor(y/4)))
}

func daysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// Name returns the holiday name of d, if any.
func (s Set) Name(d Date) (string, bool) {
	name, ok := s[d.Key()]
	return name, ok
}

// Merge copies every entry of other into s.
func (s Set) Merge(other Set) {
	for k, v := range other {
		s[k] = v
	}
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	out.Merge(s)
	return out
}

// Sorted returns the holidays in ascending date order. Keys that are not
// valid dates are skipped.
func (s Set) Sorted() []Holiday {
	list := make([]Holiday, 0, len(s))
	for key, name := range s {
		d, err := ParseKey(key)
		if err != nil {
			continue
		}
		list = append(list, Holiday{Date: d, Name: name})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
	return list
}
