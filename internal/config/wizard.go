package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectDocsDir returns the first conventional docs directory present in
// the working directory.
func detectDocsDir() string {
	for _, dir := range []string{"docs", "doc", "documentation"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return "./" + dir + "/"
		}
	}
	return DefaultConfig().DocsDir
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docbundle! Let's configure your bundle.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Source directory.
	docsPrompt := promptui.Prompt{
		Label:   "Markdown directory",
		Default: detectDocsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir

	// 2. Output file.
	outputPrompt := promptui.Prompt{
		Label:   "Output HTML file",
		Default: cfg.Output,
	}
	output, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	cfg.Output = output

	// 3. Title.
	titlePrompt := promptui.Prompt{
		Label:   "Document title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = title

	// 4. Section order.
	orderPrompt := promptui.Select{
		Label: "Section order",
		Items: []string{
			"desc — newest file name first",
			"asc  — alphabetical",
		},
	}
	orderIdx, _, err := orderPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("order selection: %w", err)
	}
	cfg.Order = []Order{OrderDesc, OrderAsc}[orderIdx]

	// 5. Source encoding.
	encodingPrompt := promptui.Select{
		Label: "Markdown encoding",
		Items: []string{string(EncodingUTF8), string(EncodingShiftJIS), string(EncodingEUCJP)},
	}
	_, encoding, err := encodingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("encoding selection: %w", err)
	}
	cfg.Encoding = Encoding(encoding)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated globs, leave blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = splitAndTrim(excludeStr)

	// 7. Widgets.
	widgetsPrompt := promptui.Select{
		Label: "Include the widget panel (calendar, TODO, memo)?",
		Items: []string{"yes", "no"},
	}
	widgetsIdx, _, err := widgetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("widgets selection: %w", err)
	}
	cfg.Widgets.Enabled = widgetsIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
