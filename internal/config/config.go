package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix        = "familyaid"
	defaultSecretKey = "change-me-familyaid-development-secret"
)

// Config holds application configuration
type Config struct {
	Env   string
	Debug bool

	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	SecretKey              string
	SessionDuration        time.Duration
	SessionCleanupInterval time.Duration
	RateLimitRequests      int
	RateLimitWindow        time.Duration

	SESRegion    string
	SESFromEmail string

	RollbarToken string

	RootUsername string
	RootPassword string
}

// Load reads configuration from the environment and optional .env files in
// the working directory
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads .env.<env> and .env from dir, then FAMILYAID_* environment
// variables over viper defaults. Variables already set win over file values.
func LoadFrom(dir string) (*Config, error) {
	env := strings.ToLower(os.Getenv("FAMILYAID_ENV"))
	if env == "" {
		env = "dev"
	}

	for _, name := range []string{".env." + env, ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", env == "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./familyaid.db")
	v.SetDefault("database.url", "")
	v.SetDefault("migrations.path", "./migrations")
	v.SetDefault("secret.key", defaultSecretKey)
	v.SetDefault("session.duration", 24*time.Hour)
	v.SetDefault("session.cleanup", time.Hour)
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ses.region", "")
	v.SetDefault("ses.from", "")
	v.SetDefault("rollbar.token", "")
	v.SetDefault("root.username", "")
	v.SetDefault("root.password", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Env:                    env,
		Debug:                  v.GetBool("debug"),
		ServerPort:             v.GetString("port"),
		DatabaseType:           v.GetString("database.type"),
		DatabasePath:           v.GetString("database.path"),
		DatabaseURL:            v.GetString("database.url"),
		MigrationsPath:         v.GetString("migrations.path"),
		SecretKey:              v.GetString("secret.key"),
		SessionDuration:        v.GetDuration("session.duration"),
		SessionCleanupInterval: v.GetDuration("session.cleanup"),
		RateLimitRequests:      v.GetInt("ratelimit.requests"),
		RateLimitWindow:        v.GetDuration("ratelimit.window"),
		SESRegion:              v.GetString("ses.region"),
		SESFromEmail:           v.GetString("ses.from"),
		RollbarToken:           v.GetString("rollbar.token"),
		RootUsername:           v.GetString("root.username"),
		RootPassword:           v.GetString("root.password"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseType {
	case "sqlite", "sqlite3":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("FAMILYAID_DATABASE_URL is required for %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
	if c.Env == "prod" && c.SecretKey == defaultSecretKey {
		return errors.New("FAMILYAID_SECRET_KEY must be set in production")
	}
	if c.SessionDuration <= 0 {
		return errors.New("session duration must be positive")
	}
	if (c.RootUsername == "") != (c.RootPassword == "") {
		return errors.New("FAMILYAID_ROOT_USERNAME and FAMILYAID_ROOT_PASSWORD must be set together")
	}
	return nil
}

// EmailEnabled reports whether outgoing email is configured
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}
