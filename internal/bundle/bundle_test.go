package bundle

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/docbundle/internal/config"
	"github.com/ziadkadry99/docbundle/internal/holiday"
	"github.com/ziadkadry99/docbundle/internal/progress"
)

var testToday = holiday.Date{Year: 2026, Month: time.January, Day: 19}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// testConfig returns a config bundling a fresh docs directory into a
// separate output directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")

	writeTestFile(t, filepath.Join(docsDir, "2024-01-10.md"), `# Kickoff

Project started.

### Password

`+"```\nhunter2\n```"+`

See [the setup notes](2024-02-01.md).
`)
	writeTestFile(t, filepath.Join(docsDir, "2024-02-01.md"), `# Setup

![diagram](img/flow.png)

`+"```go\nfunc main() {}\n```"+`
`)
	writeTestFile(t, filepath.Join(docsDir, "readme.txt"), "not bundled")

	cfg := config.DefaultConfig()
	cfg.DocsDir = docsDir
	cfg.Output = filepath.Join(root, "out", "index.html")
	cfg.Title = "Test Docs"
	return cfg
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	cfg := testConfig(t)

	res, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if res.Sections != 2 {
		t.Errorf("Sections = %d, want 2", res.Sections)
	}
	if res.Output != cfg.Output {
		t.Errorf("Output = %q, want %q", res.Output, cfg.Output)
	}

	html := readOutput(t, cfg.Output)
	if res.Bytes != len(html) {
		t.Errorf("Bytes = %d, file has %d", res.Bytes, len(html))
	}

	checks := []string{
		"<title>Test Docs</title>",
		`<html lang="ja">`,
		`data-section="2024-01-10"`,
		`data-section="2024-02-01"`,
		`<span class="password-masked">*******</span>`,
		`href="#doc-2024-02-01"`,
		`src="../docs/img/flow.png"`,
		`class="chroma"`,
		"body.dark-mode .chroma",
		`<div class="widget-panel">`,
		"2026年 1月",
		`title="元日"`,
		`"2026-01-12"`,
		`"2032-01-01"`,
		`"memoTemplate"`,
		`"table":{"from":2024,"to":2032}`,
		`"mondays":[{"month":1,"nth":2,`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if strings.Contains(html, "hunter2\n</code>") {
		t.Error("password code block should be masked")
	}
	if strings.Contains(html, "readme.txt") || strings.Contains(html, "not bundled") {
		t.Error("non-markdown files should not be bundled")
	}
	if strings.Contains(html, "cdnjs") || strings.Contains(html, "<link") {
		t.Error("bundle should not reference external resources")
	}
}

func TestBuildDefaultOrderIsDescending(t *testing.T) {
	cfg := testConfig(t)

	if _, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	html := readOutput(t, cfg.Output)

	newer := strings.Index(html, `data-section="2024-02-01"`)
	older := strings.Index(html, `data-section="2024-01-10"`)
	if newer < 0 || older < 0 || newer > older {
		t.Errorf("expected 2024-02-01 before 2024-01-10 (got %d, %d)", newer, older)
	}

	cfg.Order = config.OrderAsc
	if _, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	html = readOutput(t, cfg.Output)
	if strings.Index(html, `data-section="2024-01-10"`) > strings.Index(html, `data-section="2024-02-01"`) {
		t.Error("ascending order should put 2024-01-10 first")
	}
}

func TestBuildWithoutWidgets(t *testing.T) {
	cfg := testConfig(t)
	cfg.Widgets.Enabled = false

	if _, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	html := readOutput(t, cfg.Output)

	if strings.Contains(html, `<div class="widget-panel">`) {
		t.Error("widget panel should be omitted")
	}
	if strings.Contains(html, `title="元日"`) {
		t.Error("calendar should be omitted")
	}
	if strings.Contains(html, `"rules":`) {
		t.Error("holiday rules should be omitted")
	}
	if !strings.Contains(html, `class="theme-toggle"`) {
		t.Error("theme toggle should still be present")
	}
}

func TestBuildMaskDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mask.Enabled = false

	if _, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	html := readOutput(t, cfg.Output)
	if strings.Contains(html, `<span class="password-masked">`) {
		t.Error("nothing should be masked when masking is disabled")
	}
	if !strings.Contains(html, "hunter2") {
		t.Error("secret should be rendered as a plain code block")
	}
}

func TestBuildSectionsOpen(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sections.Open = true

	if _, err := NewBundler(cfg, WithToday(testToday)).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !strings.Contains(readOutput(t, cfg.Output), `data-section="2024-01-10" open>`) {
		t.Error("sections should be open")
	}
}

func TestBuildNoDocuments(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocsDir = t.TempDir()
	cfg.Output = filepath.Join(t.TempDir(), "index.html")

	_, err := NewBundler(cfg).Build(context.Background())
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("Build error = %v, want ErrNoDocuments", err)
	}
	if _, statErr := os.Stat(cfg.Output); !os.IsNotExist(statErr) {
		t.Error("no output should be written")
	}
}

func TestBuildMissingDocsDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocsDir = filepath.Join(t.TempDir(), "missing")

	if _, err := NewBundler(cfg).Build(context.Background()); err == nil {
		t.Fatal("expected error for a missing docs directory")
	}
}

func TestRenderCancelled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := NewBundler(cfg).Render(ctx, &buf)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Render error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestRenderUnknownHighlightStyle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Highlight.Dark = "no-such-style"

	var buf bytes.Buffer
	if _, err := NewBundler(cfg).Render(context.Background(), &buf); err == nil {
		t.Fatal("expected error for an unknown highlight style")
	}
}

func TestRenderReportsProgress(t *testing.T) {
	cfg := testConfig(t)

	var progressOut, page bytes.Buffer
	n, err := NewBundler(cfg, WithReporter(progress.NewReporter(&progressOut))).Render(context.Background(), &page)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if n != 2 {
		t.Errorf("Render returned %d sections, want 2", n)
	}

	out := progressOut.String()
	for _, want := range []string{"Bundling 2 files", "[1/2] 2024-02-01.md", "[2/2] 2024-01-10.md", "Bundle complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildLogs(t *testing.T) {
	cfg := testConfig(t)
	core, logs := observer.New(zap.DebugLevel)

	if _, err := NewBundler(cfg, WithLogger(zap.New(core))).Build(context.Background()); err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if n := logs.FilterMessage("document rendered").Len(); n != 2 {
		t.Errorf("document rendered logged %d times, want 2", n)
	}
	written := logs.FilterMessage("bundle written").All()
	if len(written) != 1 {
		t.Fatalf("bundle written logged %d times, want 1", len(written))
	}
	if got := written[0].ContextMap()["sections"]; got != int64(2) {
		t.Errorf("sections field = %v, want 2", got)
	}
}

func TestImagePrefix(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name   string
		docs   string
		output string
		prefix string
		want   string
	}{
		{"sibling dirs", filepath.Join(root, "docs"), filepath.Join(root, "out", "index.html"), "", "../docs"},
		{"output beside docs", filepath.Join(root, "docs"), filepath.Join(root, "index.html"), "", "docs"},
		{"explicit", filepath.Join(root, "docs"), filepath.Join(root, "index.html"), "assets/", "assets/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.DocsDir = tt.docs
			cfg.Output = tt.output
			cfg.ImagePrefix = tt.prefix
			if got := NewBundler(cfg).imagePrefix(); got != tt.want {
				t.Errorf("imagePrefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorageNamespace(t *testing.T) {
	a := config.DefaultConfig()
	a.Title = "Team A"
	b := config.DefaultConfig()
	b.Title = "Team B"

	nsA := StorageNamespace(a)
	if nsA != StorageNamespace(a) {
		t.Error("namespace should be stable for the same title")
	}
	if nsA == StorageNamespace(b) {
		t.Error("different titles should get different namespaces")
	}
	if !strings.HasPrefix(nsA, "docbundle:") || !strings.HasSuffix(nsA, ":") {
		t.Errorf("unexpected namespace %q", nsA)
	}

	a.Storage.Namespace = "custom."
	if got := StorageNamespace(a); got != "custom." {
		t.Errorf("configured namespace = %q, want custom.", got)
	}

	keys := StorageKeys("custom.")
	for _, name := range []string{"theme", "todos", "memo", "sections"} {
		if keys[name] != "custom."+name {
			t.Errorf("key %s = %q, want %q", name, keys[name], "custom."+name)
		}
	}
}

func TestHolidayTable(t *testing.T) {
	table := holidayTable(2026, config.WidgetsConfig{YearsBefore: 1, YearsAfter: 2})

	for _, key := range []string{"2024-01-01", "2025-01-01", "2028-11-23", "2029-01-01"} {
		if _, ok := table[key]; !ok {
			t.Errorf("holiday table missing %s", key)
		}
	}
	for _, key := range []string{"2023-01-01", "2030-01-01"} {
		if _, ok := table[key]; ok {
			t.Errorf("holiday table should not contain %s", key)
		}
	}
}

func TestPageSettingsHolidayRange(t *testing.T) {
	cfg := testConfig(t)
	b := NewBundler(cfg, WithToday(holiday.Date{Year: 2026, Month: time.October, Day: 19}))

	data, err := b.pageData(nil)
	if err != nil {
		t.Fatalf("pageData error: %v", err)
	}
	settings := data.Settings

	if want := (yearRange{From: 2024, To: 2032}); settings.Table != want {
		t.Errorf("Table = %+v, want %+v", settings.Table, want)
	}
	for _, key := range []string{"2024-01-01", "2032-11-23"} {
		if _, ok := settings.Holidays[key]; !ok {
			t.Errorf("embedded table missing %s at the range boundary", key)
		}
	}
	for _, key := range []string{"2023-01-01", "2033-01-01"} {
		if _, ok := settings.Holidays[key]; ok {
			t.Errorf("embedded table should stop before %s", key)
		}
	}

	// Years past the table are computed in the browser from the rules.
	if settings.Rules == nil {
		t.Fatal("Rules should be embedded alongside the table")
	}
	rules := holiday.RuleTable()
	if len(settings.Rules.Fixed) != len(rules.Fixed) || len(settings.Rules.Mondays) != len(rules.Mondays) {
		t.Errorf("embedded rules differ from holiday.RuleTable: %+v", settings.Rules)
	}
	if settings.Rules.Epoch != holiday.EquinoxEpoch || settings.Rules.Substitute != holiday.SubstituteHoliday {
		t.Errorf("embedded rules have wrong constants: %+v", settings.Rules)
	}
}

func TestPageSettingsWithoutWidgets(t *testing.T) {
	cfg := testConfig(t)
	cfg.Widgets.Enabled = false

	data, err := NewBundler(cfg, WithToday(testToday)).pageData(nil)
	if err != nil {
		t.Fatalf("pageData error: %v", err)
	}
	if data.Settings.Rules != nil || data.Settings.Holidays != nil {
		t.Error("holiday data should not be embedded without widgets")
	}
}

func TestBuildCollidingSectionIDs(t *testing.T) {
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	writeTestFile(t, filepath.Join(docsDir, "a b.md"), "# spaced\n")
	writeTestFile(t, filepath.Join(docsDir, "a-b.md"), "# dashed\n\n[spaced](a%20b.md)\n")

	cfg := config.DefaultConfig()
	cfg.DocsDir = docsDir
	cfg.Output = filepath.Join(root, "index.html")

	var buf bytes.Buffer
	if _, err := NewBundler(cfg, WithToday(testToday)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	html := buf.String()

	// Descending order lists "a-b" first, so it keeps the plain id.
	if n := strings.Count(html, `id="doc-a-b"`); n != 1 {
		t.Errorf("id doc-a-b appears %d times, want 1", n)
	}
	if !strings.Contains(html, `id="doc-a-b-2" data-section="a b"`) {
		t.Error("second colliding title should get a suffixed id")
	}
	if !strings.Contains(html, `href="#doc-a-b-2"`) {
		t.Error("link to a b.md should point at its suffixed section")
	}
}

func TestNewBundlerMasker(t *testing.T) {
	cfg := testConfig(t)
	if NewBundler(cfg).masker == nil {
		t.Error("masker should be built once when masking is enabled")
	}
	cfg.Mask.Enabled = false
	if NewBundler(cfg).masker != nil {
		t.Error("no masker expected when masking is disabled")
	}
}
