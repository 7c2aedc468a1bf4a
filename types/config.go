package types

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool         `mapstructure:"verbose" yaml:"-"`
	Config  string       `mapstructure:"config" yaml:"-"`
	Output  OutputConfig `mapstructure:"output" yaml:"output" validate:"required"`
	Render  RenderConfig `mapstructure:"render" yaml:"render"`
	Scan    ScanConfig   `mapstructure:"scan" yaml:"scan"`
	Log     LogConfig    `mapstructure:"log" yaml:"log"`
	Watch   WatchConfig  `mapstructure:"watch" yaml:"watch"`
}

// OutputConfig holds where the generated diagram is written
type OutputConfig struct {
	Dir  string `mapstructure:"dir" yaml:"dir" validate:"required"`
	File string `mapstructure:"file" yaml:"file" validate:"required,endswith=.puml"`
}

// RenderConfig holds settings for the external PlantUML renderer
type RenderConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Command string        `mapstructure:"command" yaml:"command" validate:"required_if=Enabled true"`
	Args    []string      `mapstructure:"args" yaml:"args,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// ScanConfig holds source scanning settings
type ScanConfig struct {
	RootObject string `mapstructure:"rootObject" yaml:"rootObject" validate:"required"`
}

// LogConfig holds debug logging settings
type LogConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	Dir   string `mapstructure:"dir" yaml:"dir" validate:"required"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce" validate:"min=0"`
}
