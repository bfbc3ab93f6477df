package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		DefaultEnvironment: "dev",
		EnvironmentsDir:    "environments",
		RequestsDir:        "requests",
		HistoryFile:        "",
		EnvPrefix:          "",
		Multiline:          BoolPtr(false),
		MaskSecrets:        BoolPtr(false),
		NoColor:            BoolPtr(false),
		Copy:               BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.DefaultEnvironment == defaults.DefaultEnvironment &&
		c.EnvironmentsDir == defaults.EnvironmentsDir &&
		c.RequestsDir == defaults.RequestsDir &&
		c.HistoryFile == defaults.HistoryFile &&
		c.EnvPrefix == defaults.EnvPrefix &&
		c.GetMultiline() == defaults.GetMultiline() &&
		c.GetMaskSecrets() == defaults.GetMaskSecrets() &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.GetCopy() == defaults.GetCopy()
}
