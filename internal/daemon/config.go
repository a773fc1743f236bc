// Package daemon manages the ThinkFirst daemon lifecycle and
// configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Classifier    ClassifierConfig    `toml:"classifier"`
	Limits        LimitsConfig        `toml:"limits"`
	Gamification  GamificationConfig  `toml:"gamification"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClassifierConfig controls the remote prompt classifier. The API key
// never lives in the TOML file; it is read from the environment
// variable named by APIKeyEnv (a .env file next to the config is
// loaded first).
type ClassifierConfig struct {
	Endpoint  string `toml:"endpoint"`
	Model     string `toml:"model"`
	Timeout   string `toml:"timeout"`
	APIKeyEnv string `toml:"api_key_env"`
}

// LimitsConfig bounds the rolling history series.
type LimitsConfig struct {
	DailyHistory   int `toml:"daily_history"`
	MonthlyHistory int `toml:"monthly_history"`
	PromptLog      int `toml:"prompt_log"`
	DailyProgress  int `toml:"daily_progress"`
}

// GamificationConfig seeds gamification defaults for fresh state.
type GamificationConfig struct {
	DefaultDailyGoal int `toml:"default_daily_goal"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Desktop bool `toml:"desktop"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	limits := domain.DefaultLimits()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 4817,
		},
		Classifier: ClassifierConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4o-mini",
			Timeout:   "10s",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Limits: LimitsConfig{
			DailyHistory:   limits.DailyHistory,
			MonthlyHistory: limits.MonthlyHistory,
			PromptLog:      limits.PromptLog,
			DailyProgress:  limits.DailyProgress,
		},
		Gamification: GamificationConfig{
			DefaultDailyGoal: 5,
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads config from ~/.thinkfirst/config.toml, falling back
// to defaults. A ~/.thinkfirst/.env file is loaded into the process
// environment so the classifier API key can live outside the config.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	home := thinkfirstHome()

	// Best effort; an absent .env is the common case.
	_ = godotenv.Load(filepath.Join(home, ".env"))

	path := filepath.Join(home, "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.thinkfirst/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(thinkfirstHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// APIKey resolves the classifier API key from the environment.
func (c ClassifierConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// TimeoutDuration parses the configured classifier timeout.
func (c ClassifierConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// DomainLimits converts the config section to domain limits, falling
// back to defaults for unset or nonsense values.
func (c LimitsConfig) DomainLimits() domain.Limits {
	limits := domain.DefaultLimits()
	if c.DailyHistory > 0 {
		limits.DailyHistory = c.DailyHistory
	}
	if c.MonthlyHistory > 0 {
		limits.MonthlyHistory = c.MonthlyHistory
	}
	if c.PromptLog > 0 {
		limits.PromptLog = c.PromptLog
	}
	if c.DailyProgress > 0 {
		limits.DailyProgress = c.DailyProgress
	}
	return limits
}

// thinkfirstHome returns the ThinkFirst data directory.
func thinkfirstHome() string {
	if env := os.Getenv("THINKFIRST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".thinkfirst")
}

// Home is exported for use by other packages.
func Home() string {
	return thinkfirstHome()
}
