package script

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sample_data.yaml
var sampleData []byte

type sampleEntry struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Category      string   `yaml:"category"`
	Priority      Priority `yaml:"priority"`
	Status        Status   `yaml:"status"`
	Responsible   string   `yaml:"responsible"`
	Notes         string   `yaml:"notes"`
	ExecutionTime *int     `yaml:"execution_time"`
	Dependencies  []string `yaml:"dependencies"`
}

// SampleScripts returns the built-in demo data set.
func SampleScripts() ([]Script, error) {
	return parseSamples(sampleData)
}

func parseSamples(data []byte) ([]Script, error) {
	var entries []sampleEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}

	scripts := make([]Script, 0, len(entries))
	for _, e := range entries {
		scripts = append(scripts, Script{
			Name:          e.Name,
			Path:          e.Path,
			Category:      e.Category,
			Priority:      e.Priority,
			Status:        e.Status,
			Responsible:   e.Responsible,
			Notes:         e.Notes,
			ExecutionTime: e.ExecutionTime,
			Dependencies:  Dependencies(e.Dependencies),
		})
	}
	return scripts, nil
}
