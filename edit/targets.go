package edit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type targetsFile struct {
	Categories []string `yaml:"categories"`
}

// LoadTargets reads the target categories from a YAML file. A missing file
// returns nil and no error.
func LoadTargets(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tf targetsFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("targets file %s: %w", path, err)
	}

	return tf.Categories, nil
}

// SaveTargets writes the target categories to path, creating its directory.
func SaveTargets(path string, categories []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := yaml.Marshal(targetsFile{Categories: categories})
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}
