package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

//go:embed panels.yaml
var defaultCatalog []byte

type catalogFile struct {
	Panels []domain.PanelSpec `yaml:"panels"`
}

// LoadCatalog returns the built-in panel catalog
func LoadCatalog() ([]domain.PanelSpec, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a panel catalog document and validates every panel
func ParseCatalog(data []byte) ([]domain.PanelSpec, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse panel catalog: %w", err)
	}
	if len(file.Panels) == 0 {
		return nil, fmt.Errorf("panel catalog is empty")
	}

	for i := range file.Panels {
		if err := file.Panels[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid panel %q: %w", file.Panels[i].ID, err)
		}
	}

	return file.Panels, nil
}
