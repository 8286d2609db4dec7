package scraper

import (
	"embed"
	"log/slog"
)

//go:embed selectors.json
var embeddedSelectors embed.FS

// LoadConfig tries to load selectors in the following order:
// 1. Embedded selectors.json
// 2. External file at path (empty path means "config/selectors.json")
// 3. Hardcoded defaults
func LoadConfig(path string) (SelectorConfig, error) {
	// 1. Try embedded
	data, err := embeddedSelectors.ReadFile("selectors.json")
	if err == nil {
		sel, parseErr := LoadSelectorsFromBytes(data)
		if parseErr == nil {
			slog.Info("Loaded selectors from embedded config.")
			return sel, nil
		}
		slog.Warn("Embedded selectors failed to parse. Trying file fallback.", "error", parseErr)
	}

	// 2. Fallback to external file
	if path == "" {
		path = "config/selectors.json"
	}

	if fileSel, err := LoadSelectors(path); err == nil {
		slog.Info("Loaded selectors from external file", "path", path)
		return fileSel, nil
	} else {
		slog.Warn("Failed to load external selectors, falling back to defaults", "path", path, "error", err)
	}

	// 3. Fallback to hardcoded defaults
	slog.Info("Using hardcoded default selectors")
	return DefaultSelectors(), nil
}
