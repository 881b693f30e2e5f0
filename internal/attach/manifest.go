package attach

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is a YAML asset list, an alternative to the inline file list.
type Manifest struct {
	Assets []Entry `yaml:"assets"`
}

// LoadManifest loads an asset manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return LoadManifestFromBytes(data)
}

// LoadManifestFromBytes loads an asset manifest from YAML bytes.
func LoadManifestFromBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
