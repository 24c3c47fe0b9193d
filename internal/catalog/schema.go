package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level YAML structure for an exercise catalog.
type CatalogSchema struct {
	Exercises []ExerciseEntry `yaml:"exercises"`
	Variants  []VariantEntry  `yaml:"variants,omitempty"`
	Links     []LinkEntry     `yaml:"links,omitempty"`
}

// ExerciseEntry defines one exercise in the catalog file.
type ExerciseEntry struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	PrimaryMuscle string   `yaml:"primary_muscle"`
	MuscleGroups  []string `yaml:"muscle_groups"`
	Pattern       string   `yaml:"pattern"`
	Equipment     string   `yaml:"equipment"`
	Increment     *float64 `yaml:"increment,omitempty"`
}

// VariantEntry defines an authored variant of a base exercise.
type VariantEntry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Base      string   `yaml:"base"`
	Equipment string   `yaml:"equipment"`
	Ratio     float64  `yaml:"ratio"`
	Increment *float64 `yaml:"increment,omitempty"`
}

// LinkEntry is an authored exercise-to-exercise ratio. It takes precedence
// over the equipment table for that direction only.
type LinkEntry struct {
	Source string  `yaml:"source"`
	Target string  `yaml:"target"`
	Ratio  float64 `yaml:"ratio"`
}

// ParseSchema decodes catalog YAML.
func ParseSchema(data []byte) (*CatalogSchema, error) {
	var schema CatalogSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &schema, nil
}

// LoadSchema reads and parses a catalog YAML file.
func LoadSchema(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}
