package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sonalan/filact-sub001/pkg/resource"
)

// panelFile is the on-disk shape of a panel definition.
type panelFile struct {
	Title     string `yaml:"title"`
	Resources []struct {
		Name       string           `yaml:"name"`
		Label      string           `yaml:"label"`
		PrimaryKey string           `yaml:"primaryKey"`
		Searchable bool             `yaml:"searchable"`
		Fields     []resource.Field `yaml:"fields"`
	} `yaml:"resources"`
}

// LoadPanel reads a panel definition from a YAML file and builds the
// resource registry. A missing file yields an empty panel rather than
// an error, so the CLI works against ad-hoc resources too.
func LoadPanel(path string) (*resource.Panel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return resource.NewPanel(""), nil
		}
		return nil, fmt.Errorf("panel: read %s: %w", path, err)
	}

	var file panelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("panel: parse %s: %w", path, err)
	}

	panel := resource.NewPanel(file.Title)
	for _, def := range file.Resources {
		opts := []resource.Option{}
		if def.Label != "" {
			opts = append(opts, resource.WithLabel(def.Label))
		}
		if def.PrimaryKey != "" {
			opts = append(opts, resource.WithPrimaryKey(def.PrimaryKey))
		}
		if def.Searchable {
			opts = append(opts, resource.WithSearch())
		}
		if len(def.Fields) > 0 {
			opts = append(opts, resource.WithFields(def.Fields...))
		}
		if err := panel.Register(resource.New(def.Name, opts...)); err != nil {
			return nil, err
		}
	}
	return panel, nil
}
