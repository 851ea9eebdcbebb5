package config

// Order controls the order in which Markdown files become sections.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Encoding names the character encoding of the Markdown sources.
type Encoding string

const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingShiftJIS Encoding = "shift_jis"
	EncodingEUCJP    Encoding = "euc-jp"
)

// Config is the top-level docbundle configuration, corresponding to .docbundle.yml.
type Config struct {
	DocsDir     string          `yaml:"docs_dir" koanf:"docs_dir"`
	Output      string          `yaml:"output" koanf:"output"`
	Title       string          `yaml:"title" koanf:"title"`
	Lang        string          `yaml:"lang" koanf:"lang"`
	Include     []string        `yaml:"include" koanf:"include"`
	Exclude     []string        `yaml:"exclude" koanf:"exclude"`
	Order       Order           `yaml:"order" koanf:"order"`
	Encoding    Encoding        `yaml:"encoding" koanf:"encoding"`
	ImagePrefix string          `yaml:"image_prefix" koanf:"image_prefix"`
	Sanitize    bool            `yaml:"sanitize" koanf:"sanitize"`
	Sections    SectionsConfig  `yaml:"sections" koanf:"sections"`
	Mask        MaskConfig      `yaml:"mask" koanf:"mask"`
	Highlight   HighlightConfig `yaml:"highlight" koanf:"highlight"`
	Widgets     WidgetsConfig   `yaml:"widgets" koanf:"widgets"`
	Storage     StorageConfig   `yaml:"storage" koanf:"storage"`
}

// SectionsConfig controls the collapsible per-file sections.
type SectionsConfig struct {
	Open bool `yaml:"open" koanf:"open"`
}

// MaskConfig controls masking of secrets written under a heading.
type MaskConfig struct {
	Enabled   bool   `yaml:"enabled" koanf:"enabled"`
	Heading   string `yaml:"heading" koanf:"heading"`
	MaxLength int    `yaml:"max_length" koanf:"max_length"`
}

// HighlightConfig names the chroma styles for light and dark mode.
type HighlightConfig struct {
	Light string `yaml:"light" koanf:"light"`
	Dark  string `yaml:"dark" koanf:"dark"`
}

// WidgetsConfig controls the widget panel.
type WidgetsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
	// YearsBefore and YearsAfter bound the holiday table embedded for the
	// calendar, relative to the build year.
	YearsBefore int `yaml:"years_before" koanf:"years_before"`
	YearsAfter  int `yaml:"years_after" koanf:"years_after"`
}

// StorageConfig controls the browser storage keys.
type StorageConfig struct {
	// Namespace prefixes every localStorage key. Empty derives one from the title.
	Namespace string `yaml:"namespace" koanf:"namespace"`
}
