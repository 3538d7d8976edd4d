// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the filesystem path of the local SQLite database that holds
	// the encryption key and the persistent storage tier.
	DBPath string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// SessionDir is the directory for session-scoped storage. It defaults to a
	// subdirectory of the OS temp directory so session entries do not survive
	// a reboot.
	SessionDir string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// Algorithm selects the AEAD used for new encrypted entries
	// ("aes-gcm" or "chacha20-poly1305"). Reads accept either.
	Algorithm string

	// LegacyObfuscationKey overrides the built-in key used by the legacy
	// obfuscation codec. Leave empty to use the built-in key, which is
	// required to read data written by older releases.
	LegacyObfuscationKey string

	// KMSKeyURI optionally points the key manager at a gocloud.dev/secrets
	// keeper (e.g., "base64key://...", "hashivault://...") used to wrap the
	// persisted encryption key at rest. Empty disables wrapping.
	KMSKeyURI string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Database configuration
		DBPath:               env.GetString("DB_PATH", defaultDBPath()),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 1),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 1),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Storage tiers
		SessionDir: env.GetString("SESSION_DIR", filepath.Join(os.TempDir(), "localvault")),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Crypto
		Algorithm:            env.GetString("VAULT_ALGORITHM", "aes-gcm"),
		LegacyObfuscationKey: env.GetString("VAULT_LEGACY_KEY", ""),

		// Key wrapping
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "localvault"),
	}
}

// defaultDBPath returns the database path under the user config directory,
// falling back to the working directory when it cannot be determined.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "localvault", "localvault.db")
	}
	return filepath.Join(dir, "localvault", "localvault.db")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
