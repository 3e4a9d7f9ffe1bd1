package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains the administrative credential and rate limiting.
// There is a single shared admin credential; no accounts, no sessions.
type SecurityConfig struct {
	AdminPassword string          `yaml:"admin_password" envconfig:"ADMIN_PASSWORD"`
	RateLimit     RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// PipelineConfig tunes the extraction and consolidation pipeline.
type PipelineConfig struct {
	// MinIDLength is the minimum digit count for a value to be accepted
	// as a student identifier. Raising it to 9-11 hardens the selector
	// against short sequence-number columns.
	MinIDLength int `yaml:"min_id_length" envconfig:"MIN_ID_LENGTH"`
	// OutcomeFlags is the declared PC1..PCn range; flags outside it are
	// still merged but the consolidated table always spans 1..n.
	OutcomeFlags int `yaml:"outcome_flags" envconfig:"OUTCOME_FLAGS"`
	// RosterFileName is the reserved file name for the graduate roster.
	RosterFileName string `yaml:"roster_file_name" envconfig:"ROSTER_FILE_NAME"`
}

// Default returns the built-in configuration. Load layers the YAML file
// and then the environment on top of it, so precedence is
// defaults < file < environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxUploadBytes:  32 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AdminPassword: "akredite2026",
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir: "Veri_Kayitlari",
			LogsDir: "logs",
		},
		Pipeline: PipelineConfig{
			MinIDLength:    7,
			OutcomeFlags:   11,
			RosterFileName: "MEZUN_LISTESI.xlsx",
		},
	}
}

// Load loads configuration starting from the defaults, overlaying an
// optional YAML file, then PCTRACK_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("PCTRACK", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func configFilePath() string {
	if p := os.Getenv("PCTRACK_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Security.AdminPassword == "" {
		return fmt.Errorf("admin password must not be empty")
	}
	if c.Pipeline.MinIDLength < 1 {
		return fmt.Errorf("min identifier length must be positive, got %d", c.Pipeline.MinIDLength)
	}
	if c.Pipeline.OutcomeFlags < 1 {
		return fmt.Errorf("outcome flag count must be positive, got %d", c.Pipeline.OutcomeFlags)
	}
	if c.Pipeline.RosterFileName == "" {
		return fmt.Errorf("roster file name must not be empty")
	}
	return nil
}

// EnsureDirectories creates the data and logs directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// RosterPath returns the full path of the reserved roster workbook.
func (c *Config) RosterPath() string {
	return filepath.Join(c.Paths.DataDir, c.Pipeline.RosterFileName)
}
