package config

// Config holds runtime settings for the taskpad CLI.
//
// Fields:
//   - DatabasePath: path of the local SQLite file backing the store.
//   - ExportDir: directory where task backups are written.
type Config struct {
	DatabasePath string
	ExportDir    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "taskpad.db"
	c.ExportDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
