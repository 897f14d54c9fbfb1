package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiper/internal/config"
	"wiper/internal/errors"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
scan:
  root: /srv/projects
  filter: "^(dist|build)$"
  match_mode: regex
  match_path: false
  prune: false
  workers: 4
settings:
  dry_run: true
  read_only: false
  watch: true
  tick_interval_ms: 100
keys:
  delete_selected: ["x"]
  quit: ["ctrl+c", "ctrl+q"]
theme:
  name: ocean
log:
  file: /tmp/wiper.log
  debug: true
`
	partialYAML = `
scan:
  filter: target
  match_mode: name
`
	invalidSyntaxYAML = `
scan:
  filter: "^node_modules$
settings: # Missing closing quote
  dry_run: yes
`
	invalidModeYAML = `
scan:
  match_mode: fuzzy
`
	invalidTickYAML = `
settings:
  tick_interval_ms: 1
`
	emptyKeysYAML = `
keys:
  quit: []
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "/srv/projects", cfg.Scan.Root)
		assert.Equal(t, "^(dist|build)$", cfg.Scan.Filter)
		assert.Equal(t, config.MatchRegex, cfg.Scan.MatchMode)
		assert.False(t, cfg.Scan.Prune)
		assert.Equal(t, 4, cfg.Scan.Workers)
		assert.True(t, cfg.Settings.DryRun)
		assert.True(t, cfg.Settings.Watch)
		assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
		assert.Equal(t, []string{"x"}, cfg.Keys["delete_selected"])
		assert.Equal(t, []string{"ctrl+c", "ctrl+q"}, cfg.Keys["quit"])
		assert.Equal(t, "/tmp/wiper.log", cfg.Log.File)
		assert.True(t, cfg.Log.Debug)

		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, config.GetTheme("ocean")["primary"], cfg.Theme.Primary)
		assert.Equal(t, config.GetTheme("ocean")["selected"], cfg.Theme.Selected)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, partialYAML))
		require.NoError(t, err)

		assert.Equal(t, "target", cfg.Scan.Filter)
		assert.Equal(t, config.MatchName, cfg.Scan.MatchMode)
		assert.True(t, cfg.Scan.Prune, "prune defaults to true")
		assert.Equal(t, 250, cfg.Settings.TickIntervalMs)
		assert.Equal(t, "default", cfg.Theme.Name)
		assert.NotEmpty(t, cfg.Theme.Border)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
		require.NoError(t, err, "Loading non-existent file should return default config, not an error")

		defaults := config.New()
		assert.Equal(t, defaults, cfg)
		assert.Equal(t, config.DefaultFilter, cfg.Scan.Filter)
		assert.Equal(t, config.MatchRegex, cfg.Scan.MatchMode)
		assert.False(t, cfg.Settings.DryRun)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("load file with invalid match mode", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidModeYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "scan.match_mode")
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("load file with invalid tick", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidTickYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings.tick_interval_ms")
	})

	t.Run("command without keys", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, emptyKeysYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keys.quit")
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults", func(*config.Config) {}, false},
		{"glob mode", func(c *config.Config) { c.Scan.MatchMode = config.MatchGlob }, false},
		{"empty filter", func(c *config.Config) { c.Scan.Filter = "" }, true},
		{"negative workers", func(c *config.Config) { c.Scan.Workers = -1 }, true},
		{"negative status ticks", func(c *config.Config) { c.Settings.StatusTicks = -2 }, true},
		{"unknown theme", func(c *config.Config) { c.Theme.Name = "neon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Scan.Filter = "^target$"
	cfg.Settings.ReadOnly = true
	cfg.Keys["refresh"] = []string{"ctrl+r"}
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "^target$", loaded.Scan.Filter)
	assert.True(t, loaded.Settings.ReadOnly)
	assert.Equal(t, []string{"ctrl+r"}, loaded.Keys["refresh"])
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		for _, key := range []string{"primary", "success", "warning", "error", "info", "emphasis", "border", "selected"} {
			assert.NotEmpty(t, theme[key], "theme %s lacks %s", name, key)
		}
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))

	cfg := config.New()
	cfg.ApplyTheme("sunset")
	assert.Equal(t, "sunset", cfg.Theme.Name)
	assert.Equal(t, config.GetTheme("sunset")["border"], cfg.Theme.Border)
}
