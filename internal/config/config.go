// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the omod CLI configuration.
// Loaded from ~/.omod/config.yaml; environment variables override file values.
type Config struct {
	// Output is the default output format for inspect: summary, json, or yaml.
	// Env: OMOD_OUTPUT
	Output string `json:"output,omitempty" mapstructure:"output"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `omod config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Output: "summary",
	}
}

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	if c.Output == "" {
		c.Output = "summary"
	}
	return c
}
