package genesis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a genesis YAML document from path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genesis: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("genesis: parse %s: %w", path, err)
	}
	return &doc, nil
}
