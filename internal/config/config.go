// Package config provides configuration loading, validation, and management
// for the channel posting bot. Values come from an optional config.yaml file
// and environment variables, with a .env file loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoggerConfig controls the application logger.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TaskConfig describes a single scheduled task.
type TaskConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval" validate:"omitempty,min=1s"`
}

// SchedulerConfig holds the scheduled task table, keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// Config defines the application configuration parameters for all components
// of the bot: Telegram credentials and role assignments, channel routing,
// MongoDB connection, logging, and the scheduler.
type Config struct {
	BotToken string `mapstructure:"bot_token" validate:"required"`
	AdminID  int64  `mapstructure:"admin_id"  validate:"required,gt=0"`

	ManagerIDs       []int64  `mapstructure:"-" validate:"dive,gt=0"`
	ManagerPasswords []string `mapstructure:"-"`
	ChannelIDs       []string `mapstructure:"-"`

	MongoURI     string `mapstructure:"mongodb_uri"   validate:"required"`
	DatabaseName string `mapstructure:"database_name" validate:"required"`
	SecretKey    string `mapstructure:"secret_key"`

	ServerNames []string `mapstructure:"server_names" validate:"min=1"`
	Timezone    string   `mapstructure:"timezone"     validate:"required"`

	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`

	// Location is resolved from Timezone during Load.
	Location *time.Location `mapstructure:"-" validate:"-"`
}

// ServerCount returns the number of configured servers.
func (c *Config) ServerCount() int {
	return len(c.ServerNames)
}

// ServerName returns the display name for a 1-based server ID.
func (c *Config) ServerName(serverID int) string {
	if serverID >= 1 && serverID <= len(c.ServerNames) {
		return c.ServerNames[serverID-1]
	}
	return fmt.Sprintf("Server %d", serverID)
}

// IsAuthorized reports whether the user is the admin or one of the managers.
func (c *Config) IsAuthorized(userID int64) bool {
	if userID == c.AdminID {
		return true
	}
	return c.IsManager(userID)
}

// IsManager reports whether the user ID is in the configured manager list.
func (c *Config) IsManager(userID int64) bool {
	for _, id := range c.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ManagerPassword returns the password paired with the manager at the given
// list position, falling back to a fixed default when the password list is
// shorter than the manager list.
func (c *Config) ManagerPassword(idx int) string {
	if idx >= 0 && idx < len(c.ManagerPasswords) {
		return c.ManagerPasswords[idx]
	}
	return defaultManagerPassword
}

// Load reads configuration from .env, config.yaml, and the environment,
// applies defaults, and validates the result. A missing config file is not an
// error; missing required environment values are.
func Load(configPath string) (*Config, error) {
	// Mirrors the original deployment contract: a .env file beside the
	// binary feeds the process environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var err error
	cfg.ManagerIDs, err = parseInt64List(v.GetString("manager_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid MANAGER_IDS: %w", err)
	}
	cfg.ManagerPasswords = parseStringList(v.GetString("manager_passwords"))
	cfg.ChannelIDs = parseStringList(v.GetString("channel_ids"))

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// bindEnv wires the exact environment variable names the deployment uses.
func bindEnv(v *viper.Viper) {
	envKeys := map[string]string{
		"bot_token":         "BOT_TOKEN",
		"admin_id":          "ADMIN_ID",
		"manager_ids":       "MANAGER_IDS",
		"manager_passwords": "MANAGER_PASSWORDS",
		"channel_ids":       "CHANNEL_IDS",
		"mongodb_uri":       "MONGODB_URI",
		"database_name":     "DATABASE_NAME",
		"secret_key":        "SECRET_KEY",
		"timezone":          "TIMEZONE",
		"logger.level":      "LOG_LEVEL",
	}
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}
}

// parseInt64List parses a comma-separated list of integer identifiers,
// skipping empty entries.
func parseInt64List(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid identifier", part)
		}
		out = append(out, id)
	}
	return out, nil
}

// parseStringList splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func parseStringList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
