package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Reaper       ReaperConfig     `mapstructure:"reaper"`
	Analysis     AnalysisConfig   `mapstructure:"analysis"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Features     FeaturesConfig   `mapstructure:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains report cache database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// ProcessingConfig contains audio decoding and worker settings
type ProcessingConfig struct {
	Workers       int           `mapstructure:"workers"`
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
	MaxDuration   time.Duration `mapstructure:"max_duration"`
	TempDir       string        `mapstructure:"temp_dir"`
}

// ReaperConfig locates REAPER projects and installation data
type ReaperConfig struct {
	ProjectsDir  string `mapstructure:"projects_dir"`
	ResourcePath string `mapstructure:"resource_path"`
}

// AnalysisConfig contains warning threshold overrides
type AnalysisConfig struct {
	HotPeakDB      float64 `mapstructure:"hot_peak_db"`
	MuddyLowDB     float64 `mapstructure:"muddy_low_db"`
	DarkCentroidHz float64 `mapstructure:"dark_centroid_hz"`
	NarrowWidth    float64 `mapstructure:"narrow_width"`
	StreamingLUFS  float64 `mapstructure:"streaming_lufs"`
	LowCrestDB     float64 `mapstructure:"low_crest_db"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	CORSMethods     []string `mapstructure:"cors_methods"`
	CORSHeaders     []string `mapstructure:"cors_headers"`
	EnableRequestID bool     `mapstructure:"enable_request_id"`
	EnableRecovery  bool     `mapstructure:"enable_recovery"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// FeaturesConfig contains feature flags
type FeaturesConfig struct {
	EnableReportCache bool `mapstructure:"enable_report_cache"`
	EnablePluginScan  bool `mapstructure:"enable_plugin_scan"`
	MaintenanceMode   bool `mapstructure:"maintenance_mode"`
}
