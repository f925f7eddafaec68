package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int     `yaml:"port"`
		WriteRatePerSec float64 `yaml:"write_rate_per_sec"`
		WriteBurst      int     `yaml:"write_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Grid struct {
		BaseSlots     []string `yaml:"base_slots"`
		ExtendCount   int      `yaml:"extend_count"`
		Days          int      `yaml:"days"`
		UndoDepth     int      `yaml:"undo_depth"`
		RejectOverlap bool     `yaml:"reject_overlap"`
	} `yaml:"grid"`

	Staff []StaffConfig `yaml:"staff"`

	HoursPath string `yaml:"hours_path"`
}

// StaffConfig is one staff directory entry.
type StaffConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.WriteRatePerSec <= 0 {
		c.Server.WriteRatePerSec = 10
	}
	if c.Server.WriteBurst <= 0 {
		c.Server.WriteBurst = 20
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/medigrid.db"
	}
	if len(c.Grid.BaseSlots) == 0 {
		c.Grid.BaseSlots = DefaultBaseSlots()
	}
	if c.Grid.ExtendCount == 0 {
		c.Grid.ExtendCount = 4
	}
	if c.Grid.Days <= 0 {
		c.Grid.Days = 7
	}
	if c.HoursPath == "" {
		c.HoursPath = "configs/hours.yaml"
	}
}

// DefaultBaseSlots is the standing half-hour sequence from opening to 18:00;
// evening slots come from the grid's extend_count.
func DefaultBaseSlots() []string {
	return []string{
		"08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00",
		"15:30", "16:00", "16:30", "17:00", "17:30", "18:00",
	}
}
