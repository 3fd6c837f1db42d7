package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Cookie  string        `mapstructure:"cookie" toml:"cookie,omitempty"`
	Device  string        `mapstructure:"device" toml:"device,omitempty"`
	Key     string        `mapstructure:"key" toml:"key,omitempty"`
	Upload  UploadConfig  `mapstructure:"upload" toml:"upload"`
	HTTP    HTTPConfig    `mapstructure:"http" toml:"http"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// UploadConfig contains the defaults applied to every upload
type UploadConfig struct {
	App            string `mapstructure:"app" toml:"app,omitempty"`
	PublicMetadata bool   `mapstructure:"public_metadata" toml:"public_metadata"`
}

// HTTPConfig contains transport settings
type HTTPConfig struct {
	// Timeout of zero disables the deadline
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	Color  bool   `mapstructure:"color" toml:"color"`
}
