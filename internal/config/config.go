package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot process.
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	App     AppConfig
}

// DiscordConfig holds the gateway credentials.
type DiscordConfig struct {
	// Token is the bot token. Required.
	Token string

	// ApplicationID is the application the slash commands belong to.
	// Falls back to the session user when empty.
	ApplicationID string

	// GuildID scopes command registration to one guild during development.
	GuildID string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AppConfig controls workflow behavior.
type AppConfig struct {
	// GuildConfigPath points at the YAML guild configuration file
	GuildConfigPath string

	// AnswerTimeout is how long an applicant has to answer each question
	AnswerTimeout time.Duration
}

// Load reads configuration from the environment, honoring a .env file when
// one is present. A missing bot token is the only fatal condition here;
// everything else has a workable default.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is normal in deployment
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeoutSec, err := strconv.Atoi(getEnv("ANSWER_TIMEOUT_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANSWER_TIMEOUT_SECONDS: %w", err)
	}

	return &Config{
		Discord: DiscordConfig{
			Token:         token,
			ApplicationID: os.Getenv("APPLICATION_ID"),
			GuildID:       os.Getenv("GUILD_ID"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		App: AppConfig{
			GuildConfigPath: getEnv("GUILD_CONFIG_PATH", "guild.yaml"),
			AnswerTimeout:   time.Duration(timeoutSec) * time.Second,
		},
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
