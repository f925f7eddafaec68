package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"medigrid/internal/hours"
)

// HoursConfig is the root of hours.yaml: one entry per weekday number
// (0-6, Sunday first). Missing weekdays count as closed.
type HoursConfig struct {
	Weekdays map[int]hours.Entry `yaml:"weekdays"`
}

// LoadHoursConfig loads and validates the business-hours table.
func LoadHoursConfig(path string) (*HoursConfig, error) {
	if path == "" {
		path = "configs/hours.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hours config: %w", err)
	}

	var cfg HoursConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse hours config: %w", err)
	}

	for wd := range cfg.Weekdays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("invalid weekday %d in hours config", wd)
		}
	}
	return &cfg, nil
}

// Table builds the policy table from the loaded entries.
func (c *HoursConfig) Table() *hours.Table {
	return hours.NewTable(c.Weekdays)
}
