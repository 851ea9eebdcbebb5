package config

// DefaultConfigFile is the configuration file looked up by default.
const DefaultConfigFile = ".docbundle.yml"

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "開発ドキュメント"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:  "./docs/",
		Output:   "./index.html",
		Title:    DefaultTitle,
		Lang:     "ja",
		Include:  []string{"*.md"},
		Exclude:  []string{},
		Order:    OrderDesc,
		Encoding: EncodingUTF8,
		Mask: MaskConfig{
			Enabled:   true,
			Heading:   "Password",
			MaxLength: 12,
		},
		Highlight: HighlightConfig{
			Light: "github",
			Dark:  "monokai",
		},
		Widgets: WidgetsConfig{
			Enabled:     true,
			YearsBefore: 1,
			YearsAfter:  5,
		},
	}
}
