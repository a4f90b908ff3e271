// Package config handles loading due.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/duecli/due/internal/paths"
	internalstrings "github.com/duecli/due/internal/strings"
	"github.com/duecli/due/internal/validation"
	"github.com/duecli/due/task"
)

// Config represents the merged due configuration. Values come from the
// global config file and a per-directory due.toml, with the directory
// file winning key by key.
type Config struct {
	// DataFile overrides the default task file location. A leading ~/
	// expands to the home directory; other relative paths resolve
	// against the directory of the config file that set them.
	DataFile string `toml:"data_file"`

	// DefaultCategory is assigned to tasks created without a category.
	// It moves to the front of the category set.
	DefaultCategory string `toml:"default_category"`

	// Categories replaces the built-in category set.
	Categories []string `toml:"categories"`

	UI UI `toml:"ui"`
}

// UI contains presentation configuration.
type UI struct {
	// Color controls colored output: auto, always, or never.
	Color string `toml:"color"`
}

// ColorModes lists the accepted values for ui.color.
var ColorModes = []string{"auto", "always", "never"}

// Load loads configuration from dir's due.toml and the global config
// file. Returns a usable zero config when neither file exists.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}
	if err := resolveDataFile(globalCfg, filepath.Dir(globalPath)); err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "due.toml"))
	if err != nil {
		return nil, err
	}
	if err := resolveDataFile(projectCfg, dir); err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := validateConfig(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

// resolveDataFile rewrites cfg.DataFile into an absolute path. A leading
// ~ expands against the home directory, other relative paths against
// baseDir.
func resolveDataFile(cfg *Config, baseDir string) error {
	path := strings.TrimSpace(cfg.DataFile)
	if path == "" {
		cfg.DataFile = ""
		return nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := paths.HomeDir()
		if err != nil {
			return err
		}
		cfg.DataFile = filepath.Join(home, strings.TrimPrefix(path, "~"))
		return nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	cfg.DataFile = path
	return nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.DataFile = mergeString(projectMeta.IsDefined("data_file"), projectCfg.DataFile, globalCfg.DataFile)
	merged.DefaultCategory = mergeString(projectMeta.IsDefined("default_category"), projectCfg.DefaultCategory, globalCfg.DefaultCategory)
	merged.UI.Color = mergeString(projectMeta.IsDefined("ui", "color"), projectCfg.UI.Color, globalCfg.UI.Color)
	if projectMeta.IsDefined("categories") {
		merged.Categories = append([]string(nil), projectCfg.Categories...)
	} else if globalMeta.IsDefined("categories") {
		merged.Categories = append([]string(nil), globalCfg.Categories...)
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func validateConfig(cfg *Config) error {
	color := internalstrings.NormalizeLowerTrimSpace(cfg.UI.Color)
	if color == "" {
		color = "auto"
	}
	validColor := false
	for _, mode := range ColorModes {
		if color == mode {
			validColor = true
			break
		}
	}
	if !validColor {
		return fmt.Errorf("invalid ui.color %q (valid: %s)", cfg.UI.Color, validation.FormatValidValues(ColorModes))
	}
	cfg.UI.Color = color

	for _, label := range cfg.Categories {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("categories entries cannot be blank")
		}
	}
	return nil
}

// CategorySet returns the allowed category labels with the default
// category first. An empty config yields the built-in set; a default
// category outside the set is prepended as written.
func (c *Config) CategorySet() []string {
	set := c.Categories
	if len(set) == 0 {
		set = task.DefaultCategories()
	} else {
		set = append([]string(nil), set...)
	}

	if c.DefaultCategory == "" {
		return set
	}
	for i, label := range set {
		if strings.EqualFold(label, c.DefaultCategory) {
			reordered := make([]string, 0, len(set))
			reordered = append(reordered, set[i])
			reordered = append(reordered, set[:i]...)
			reordered = append(reordered, set[i+1:]...)
			return reordered
		}
	}
	return append([]string{c.DefaultCategory}, set...)
}
