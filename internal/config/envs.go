package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment.
type Config struct {
	Host           string        // SSH listen host
	Port           string        // SSH listen port
	PrivateKeyPath string        // SSH host key
	DBPath         string        // SQLite run history file
	RenderDelay    time.Duration // pacing between rendered frames
	LogLevel       log.Level
}

// Envs is loaded once, from a .env file when present.
var Envs = initConfig()

func initConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found or could not be loaded", "error", err)
	}
	return Load()
}

// Load reads the configuration from the current environment.
func Load() Config {
	return Config{
		Host:           getEnvWithDefault("ROBOVAC_HOST", "0.0.0.0"),
		Port:           getEnvWithDefault("ROBOVAC_PORT", "6997"),
		PrivateKeyPath: getEnvWithDefault("ROBOVAC_PRIVATE_KEY_PATH", ".ssh/robovac_ed25519"),
		DBPath:         getEnvWithDefault("ROBOVAC_DB_PATH", "robovac.db"),
		RenderDelay:    getEnvAsDuration("ROBOVAC_RENDER_DELAY", 200*time.Millisecond),
		LogLevel:       getEnvAsLevel("ROBOVAC_LOG_LEVEL", log.InfoLevel),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("150ms") or a plain number of
// milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Warn("Ignoring malformed duration", "key", key, "value", value, "default", defaultValue)
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue log.Level) log.Level {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		log.Warn("Ignoring malformed log level", "key", key, "value", value)
		return defaultValue
	}
	return level
}
