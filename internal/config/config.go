package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Widget  WidgetConfig  `mapstructure:"widget" validate:"required"`
	Ambient AmbientConfig `mapstructure:"ambient" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Timezone is an IANA zone name used for server-rendered timestamps.
	// Empty means the host's local zone.
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects and configures the key/value store backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres memory"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	// URL is the Postgres connection string.
	URL string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
}

// WidgetConfig holds the tunables of the study widget components.
type WidgetConfig struct {
	DefaultTheme      string  `mapstructure:"default_theme" validate:"required,oneof=horror desi neon"`
	SessionMinutes    int     `mapstructure:"session_minutes" validate:"required,gt=0,lte=600"`
	TickDrain         float64 `mapstructure:"tick_drain" validate:"gte=0,lte=100"`
	HiddenDrain       float64 `mapstructure:"hidden_drain" validate:"gte=0,lte=100"`
	RestoreSteps      int     `mapstructure:"restore_steps" validate:"required,gt=0"`
	RestoreAmount     float64 `mapstructure:"restore_amount" validate:"gt=0,lte=100"`
	RestoreIntervalMS int     `mapstructure:"restore_interval_ms" validate:"required,gt=0"`
}

// AmbientConfig configures the ambient noise engine. Enabled=false models
// a host without audio capability.
type AmbientConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	SampleRate  int     `mapstructure:"sample_rate" validate:"required,gte=8000,lte=192000"`
	CutoffHz    float64 `mapstructure:"cutoff_hz" validate:"gt=0"`
	Level       float64 `mapstructure:"level" validate:"gte=0,lte=1"`
	RampMS      int     `mapstructure:"ramp_ms" validate:"gte=0"`
	LoopSeconds int     `mapstructure:"loop_seconds" validate:"required,gt=0,lte=30"`
}
