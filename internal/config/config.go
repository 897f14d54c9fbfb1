package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"wiper/internal/errors"
)

// Match modes understood by the scan pipeline.
const (
	MatchRegex = "regex"
	MatchName  = "name"
	MatchGlob  = "glob"
)

// DefaultFilter selects JavaScript dependency folders.
const DefaultFilter = "^node_modules$"

// Config represents the application configuration structure.
type Config struct {
	Scan     Scan                `yaml:"scan"`
	Settings Settings            `yaml:"settings"`
	Keys     map[string][]string `yaml:"keys,omitempty"` // command name -> chords, replaces the defaults
	Theme    Theme               `yaml:"theme"`
	Log      Log                 `yaml:"log"`
}

// Scan configures what the scan pipeline reports.
type Scan struct {
	Root      string `yaml:"root"`       // Root used when no argument is given
	Filter    string `yaml:"filter"`     // Pattern entries must match
	MatchMode string `yaml:"match_mode"` // regex, name or glob
	MatchPath bool   `yaml:"match_path"` // Match against the full path instead of the entry name
	Prune     bool   `yaml:"prune"`      // Stop descending at the first match
	Workers   int    `yaml:"workers"`    // Size aggregation concurrency, 0 = number of CPUs
}

// Settings holds the interactive behaviour switches.
type Settings struct {
	DryRun         bool `yaml:"dry_run"`          // Report deletions without removing anything
	ReadOnly       bool `yaml:"read_only"`        // Disable selection and deletion
	Watch          bool `yaml:"watch"`            // Notice changes under the root
	TickIntervalMs int  `yaml:"tick_interval_ms"` // Period of the tick producer
	StatusTicks    int  `yaml:"status_ticks"`     // Ticks a status message stays visible, 0 = forever
}

// Theme holds the colors of the terminal UI.
type Theme struct {
	Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary"`  // Titles
	Success  string `yaml:"success"`  // Focused field border
	Warning  string `yaml:"warning"`  // Status notices
	Error    string `yaml:"error"`    // Error message color
	Info     string `yaml:"info"`     // Totals
	Emphasis string `yaml:"emphasis"` // Cursor row
	Border   string `yaml:"border"`   // Unfocused frames
	Selected string `yaml:"selected"` // Selected rows
}

// Log configures the diagnostic log.
type Log struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// DefaultPath returns ~/.config/wiper/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wiper", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewFileError("error reading config file", path, errors.FileAccessDenied, err)
	}

	// Keys absent from the file keep their default values. Theme colors are
	// resolved after decoding so a theme name alone selects its palette.
	cfg.Theme = Theme{Name: "default"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Scan.Root = "."
	cfg.Scan.Filter = DefaultFilter
	cfg.Scan.MatchMode = MatchRegex
	cfg.Scan.Prune = true

	cfg.Settings.TickIntervalMs = 250
	cfg.Settings.StatusTicks = 20

	cfg.Keys = map[string][]string{}
	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFileError("failed to create config directory", dir, errors.FileOperationFailed, err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileError("failed to write config file", path, errors.FileOperationFailed, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	switch c.Scan.MatchMode {
	case MatchRegex, MatchName, MatchGlob:
	default:
		return errors.NewConfigError("invalid match mode", "scan.match_mode", errors.InvalidConfig,
			fmt.Errorf("got %q, want %s, %s or %s", c.Scan.MatchMode, MatchRegex, MatchName, MatchGlob))
	}
	if c.Scan.Filter == "" {
		return errors.NewConfigError("filter cannot be empty", "scan.filter", errors.InvalidConfig, nil)
	}
	if c.Scan.Workers < 0 {
		return errors.NewConfigError("workers must be >= 0", "scan.workers", errors.InvalidConfig, nil)
	}
	if c.Settings.TickIntervalMs < 10 {
		return errors.NewConfigError("tick interval must be >= 10ms", "settings.tick_interval_ms", errors.InvalidConfig, nil)
	}
	if c.Settings.StatusTicks < 0 {
		return errors.NewConfigError("status ticks must be >= 0", "settings.status_ticks", errors.InvalidConfig, nil)
	}
	for name, keys := range c.Keys {
		if len(keys) == 0 {
			return errors.NewConfigError("command needs at least one key", "keys."+name, errors.InvalidConfig, nil)
		}
	}
	if c.Theme.Name != "" && !isTheme(c.Theme.Name) {
		return errors.NewConfigError("unknown theme", "theme.name", errors.InvalidConfig, fmt.Errorf("%q", c.Theme.Name))
	}
	return nil
}

// TickInterval returns the tick period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Settings.TickIntervalMs) * time.Millisecond
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "120", // Light Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "240", // Dark Grey
			"selected": "208", // Orange
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "238",
			"selected": "172",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "250",
			"selected": "215",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "240",
			"selected": "255",
		},
		"ocean": {
			"primary":  "31",
			"success":  "36",
			"warning":  "220",
			"error":    "196",
			"info":     "33",
			"emphasis": "51",
			"border":   "24",
			"selected": "214",
		},
		"sunset": {
			"primary":  "208",
			"success":  "154",
			"warning":  "214",
			"error":    "196",
			"info":     "69",
			"emphasis": "203",
			"border":   "94",
			"selected": "202",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets every theme color from the named theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
	c.Theme.Selected = theme["selected"]
}

// fillTheme completes colors the file left blank from the named theme.
func (c *Config) fillTheme() {
	theme := GetTheme(c.Theme.Name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Success, "success")
	fill(&c.Theme.Warning, "warning")
	fill(&c.Theme.Error, "error")
	fill(&c.Theme.Info, "info")
	fill(&c.Theme.Emphasis, "emphasis")
	fill(&c.Theme.Border, "border")
	fill(&c.Theme.Selected, "selected")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}

func isTheme(name string) bool {
	for _, t := range ListThemes() {
		if t == name {
			return true
		}
	}
	return false
}
