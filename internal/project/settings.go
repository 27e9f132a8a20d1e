// Package project persists placement settings and floorplan layouts as JSON
// files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.floorsnap/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".floorsnap")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveSettings persists Settings to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveSettings(path string, settings model.Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the given path. If the file does not
// exist, it returns DefaultSettings with no error. Fields missing from the
// file keep their default values.
func LoadSettings(path string) (model.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	settings := model.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	// An explicit null disables pair snapping; keep the list non-nil.
	if settings.PairRules == nil {
		settings.PairRules = []model.PairRule{}
	}
	return settings, nil
}
