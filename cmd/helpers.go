package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ziadkadry99/docbundle/internal/config"
	"github.com/ziadkadry99/docbundle/internal/holiday"
)

// loadConfig loads the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docbundle init` to create a config file", err)
	}
	logger.Debug("config loaded")
	return cfg, nil
}

// today returns the local calendar date, or the parsed override.
func today(override string) (holiday.Date, error) {
	if override == "" {
		return holiday.DateOf(time.Now()), nil
	}
	d, err := holiday.ParseKey(override)
	if err != nil {
		return holiday.Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", override)
	}
	return d, nil
}

// openOutput returns stdout when path is empty or "-", else creates path.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}
