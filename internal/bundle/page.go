package bundle

import (
	"embed"
	"html/template"
	"sync"

	"github.com/google/uuid"

	"github.com/ziadkadry99/docbundle/internal/calendar"
	"github.com/ziadkadry99/docbundle/internal/config"
	"github.com/ziadkadry99/docbundle/internal/holiday"
	"github.com/ziadkadry99/docbundle/internal/markdown"
)

//go:embed assets/page.html.tmpl assets/style.css assets/widgets.js
var assets embed.FS

// Widget panel width bounds in pixels.
const (
	MinPanelWidth = 280
	MaxPanelWidth = 800
)

// MemoTemplate is inserted at the cursor by the memo pad's "+" button.
const MemoTemplate = "## \n\n- \n\n--- \n"

// memoDebounce is the memo autosave delay in milliseconds.
const memoDebounce = 300

// storageKeyNames are the localStorage entries the page uses, before
// namespacing.
var storageKeyNames = []string{"theme", "todos", "memo", "sections", "panelOpen", "panelWidth", "collapsed"}

var (
	parseOnce sync.Once
	pageTmpl  *template.Template
	pageCSS   string
	pageJS    string
	parseErr  error
)

func loadAssets() (*template.Template, error) {
	parseOnce.Do(func() {
		pageTmpl, parseErr = template.ParseFS(assets, "assets/page.html.tmpl")
		if parseErr != nil {
			return
		}
		var css, js []byte
		if css, parseErr = assets.ReadFile("assets/style.css"); parseErr != nil {
			return
		}
		if js, parseErr = assets.ReadFile("assets/widgets.js"); parseErr != nil {
			return
		}
		pageCSS, pageJS = string(css), string(js)
	})
	return pageTmpl, parseErr
}

// Section is one bundled document.
type Section struct {
	Title string
	ID    string
	HTML  template.HTML
}

type pageData struct {
	Title    string
	Lang     string
	Version  string
	CSS      template.CSS
	Script   template.JS
	Sections []Section
	Widgets  bool
	Calendar calendarView
	Settings pageSettings
}

type calendarView struct {
	Title   string
	Headers [7]string
	Weeks   [][]calendar.DayCell
}

// yearRange is an inclusive span of years.
type yearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type panelBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// pageSettings is serialized into the page as the widgets' configuration.
type pageSettings struct {
	Keys         map[string]string `json:"keys"`
	Holidays     holiday.Set       `json:"holidays"`
	Table        yearRange         `json:"table"`
	Rules        *holiday.Rules    `json:"rules,omitempty"`
	Panel        panelBounds       `json:"panel"`
	MemoTemplate string            `json:"memoTemplate"`
	MemoDebounce int               `json:"memoDebounce"`
}

// StorageNamespace returns the prefix of every localStorage key a bundle
// uses. Without a configured namespace it is derived from the title, so
// two bundles opened from the same origin keep separate state.
func StorageNamespace(cfg *config.Config) string {
	if cfg.Storage.Namespace != "" {
		return cfg.Storage.Namespace
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(cfg.Title))
	return "docbundle:" + id.String() + ":"
}

// StorageKeys maps each widget state name to its namespaced key.
func StorageKeys(ns string) map[string]string {
	keys := make(map[string]string, len(storageKeyNames))
	for _, name := range storageKeyNames {
		keys[name] = ns + name
	}
	return keys
}

// newCalendarView pre-renders the month containing today.
func newCalendarView(today holiday.Date, cache *holiday.Cache) calendarView {
	cursor := calendar.NewCursor(today)
	return calendarView{
		Title:   cursor.Title(),
		Headers: calendar.WeekdayHeaders,
		Weeks:   calendar.Weeks(calendar.Month(*cursor, today, cache)),
	}
}

// holidayYears is the span of years embedded as a precomputed table. One
// extra year on each side resolves the padding cells of the edge months.
// The browser computes years outside it from the rule table.
func holidayYears(year int, w config.WidgetsConfig) yearRange {
	return yearRange{From: year - w.YearsBefore - 1, To: year + w.YearsAfter + 1}
}

// holidayTable returns the precomputed holidays embedded for the browser
// calendar.
func holidayTable(year int, w config.WidgetsConfig) holiday.Set {
	r := holidayYears(year, w)
	return holiday.Span(r.From, r.To)
}

func (b *Bundler) pageData(sections []Section) (*pageData, error) {
	css, err := markdown.HighlightCSS(b.cfg.Highlight.Light, b.cfg.Highlight.Dark)
	if err != nil {
		return nil, err
	}

	data := &pageData{
		Title:    b.cfg.Title,
		Lang:     b.cfg.Lang,
		Version:  b.version,
		CSS:      template.CSS(pageCSS + "\n" + css),
		Script:   template.JS(pageJS),
		Sections: sections,
		Widgets:  b.cfg.Widgets.Enabled,
		Settings: pageSettings{
			Keys:         StorageKeys(StorageNamespace(b.cfg)),
			Panel:        panelBounds{Min: MinPanelWidth, Max: MaxPanelWidth},
			MemoTemplate: MemoTemplate,
			MemoDebounce: memoDebounce,
		},
	}
	if data.Widgets {
		data.Calendar = newCalendarView(b.today, b.cache)
		rules := holiday.RuleTable()
		data.Settings.Holidays = holidayTable(b.today.Year, b.cfg.Widgets)
		data.Settings.Table = holidayYears(b.today.Year, b.cfg.Widgets)
		data.Settings.Rules = &rules
	}
	return data, nil
}
