package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CURLSPEC_DEFAULTENVIRONMENT=staging.
const EnvPrefix = "CURLSPEC"

// Config represents the curlspec configuration
type Config struct {
	DefaultEnvironment string `mapstructure:"defaultEnvironment" yaml:"defaultEnvironment,omitempty"`
	EnvironmentsDir    string `mapstructure:"environmentsDir" yaml:"environmentsDir,omitempty"`
	RequestsDir        string `mapstructure:"requestsDir" yaml:"requestsDir,omitempty"`
	HistoryFile        string `mapstructure:"historyFile" yaml:"historyFile,omitempty"`   // empty disables history
	EnvPrefix          string `mapstructure:"envPrefix" yaml:"envPrefix,omitempty"`       // OS variables with this prefix become template variables
	Multiline          *bool  `mapstructure:"multiline" yaml:"multiline,omitempty"`
	MaskSecrets        *bool  `mapstructure:"maskSecrets" yaml:"maskSecrets,omitempty"`
	NoColor            *bool  `mapstructure:"noColor" yaml:"noColor,omitempty"`
	Copy               *bool  `mapstructure:"copy" yaml:"copy,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetMultiline returns the multiline setting, defaulting to false
func (c *Config) GetMultiline() bool {
	return getBool(c.Multiline, false)
}

// GetMaskSecrets returns the mask secrets setting, defaulting to false
func (c *Config) GetMaskSecrets() bool {
	return getBool(c.MaskSecrets, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetCopy returns the copy-to-clipboard setting, defaulting to false
func (c *Config) GetCopy() bool {
	return getBool(c.Copy, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".curlspec.yaml",
	"curlspec.yaml",
	".curlspec.json",
	".curlspecrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory. When
// none exists the defaults, with environment overrides applied, are returned.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("defaultEnvironment", defaults.DefaultEnvironment)
	v.SetDefault("environmentsDir", defaults.EnvironmentsDir)
	v.SetDefault("requestsDir", defaults.RequestsDir)
	v.SetDefault("historyFile", defaults.HistoryFile)
	v.SetDefault("envPrefix", defaults.EnvPrefix)
	v.SetDefault("multiline", defaults.GetMultiline())
	v.SetDefault("maskSecrets", defaults.GetMaskSecrets())
	v.SetDefault("noColor", defaults.GetNoColor())
	v.SetDefault("copy", defaults.GetCopy())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v.SetConfigType("json")
	default:
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DefaultEnvironment != "" {
		result.DefaultEnvironment = other.DefaultEnvironment
	}
	if other.EnvironmentsDir != "" {
		result.EnvironmentsDir = other.EnvironmentsDir
	}
	if other.RequestsDir != "" {
		result.RequestsDir = other.RequestsDir
	}
	if other.HistoryFile != "" {
		result.HistoryFile = other.HistoryFile
	}
	if other.EnvPrefix != "" {
		result.EnvPrefix = other.EnvPrefix
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Multiline != nil {
		result.Multiline = other.Multiline
	}
	if other.MaskSecrets != nil {
		result.MaskSecrets = other.MaskSecrets
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Copy != nil {
		result.Copy = other.Copy
	}

	return &result
}

// SaveConfig saves the configuration to a YAML file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
