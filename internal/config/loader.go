package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the file name searched for in config directories.
const CatalogFile = "catalog.yaml"

// Load loads the business catalog.
// Search order: customPath -> ~/.bizsim/catalog.yaml -> ./configs/catalog.yaml -> embedded default
//
// An explicit customPath must exist, parse and validate. The other
// locations are skipped silently when they do not.
func Load(customPath string) (Catalog, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cat, err := Parse(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cat, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(CatalogFile); userCfgPath != "" {
		if cat, ok := tryLoad(userCfgPath); ok {
			return cat, nil
		}
	}

	// Try local configs directory
	if cat, ok := tryLoad(filepath.Join("configs", CatalogFile)); ok {
		return cat, nil
	}

	// Use embedded default YAML
	cat, err := Parse(defaultCatalogYAML)
	if err != nil {
		return DefaultCatalog(), nil // Fallback to hardcoded if embed fails
	}
	return cat, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, err
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	for i := range cat.Businesses {
		cat.Businesses[i] = cat.Businesses[i].WithDefaults()
	}
	return cat, nil
}

// Marshal renders a catalog back to YAML.
func Marshal(cat Catalog) ([]byte, error) {
	return yaml.Marshal(cat)
}

func tryLoad(path string) (Catalog, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, false
	}
	cat, err := Parse(data)
	if err != nil {
		return Catalog{}, false
	}
	return cat, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bizsim", filename)
}
