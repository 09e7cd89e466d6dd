package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// Categories returns the suggested menu category list: the embedded
// defaults, or the contents of CategoriesFile when set.
func (c *Config) Categories() ([]string, error) {
	data := defaultCategoriesYAML
	if c.CategoriesFile != "" {
		var err error
		data, err = os.ReadFile(c.CategoriesFile)
		if err != nil {
			return nil, fmt.Errorf("read categories file: %w", err)
		}
	}

	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("categories list is empty")
	}
	return f.Categories, nil
}
