package config

import (
	"encoding/json"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string    `json:"serverAddress"`
	DatabasePath  string    `json:"databasePath"`
	DatabaseURL   string    `json:"databaseUrl"`
	Security      Security  `json:"security"`
	Clipboard     Clipboard `json:"clipboard"`
}

// UsePostgres returns true if PostgreSQL should be used
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// Security configuration
type Security struct {
	APIKey       string `json:"apiKey"`
	APIKeyHeader string `json:"apiKeyHeader"`
}

// Clipboard configuration. MaxContentBytes bounds the transport size of the
// opaque ciphertext payload; the server never inspects the content itself.
type Clipboard struct {
	MaxContentBytes     int `json:"maxContentBytes"`
	DefaultHistoryLimit int `json:"defaultHistoryLimit"`
	MaxHistoryLimit     int `json:"maxHistoryLimit"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":5000",
		DatabasePath:  "clipsync.db",
		Security: Security{
			APIKey:       "CHANGE_THIS_TO_A_SECURE_API_KEY_AT_LEAST_32_CHARS",
			APIKeyHeader: "X-API-Key",
		},
		Clipboard: Clipboard{
			MaxContentBytes:     1 << 20, // 1MB of ciphertext per item
			DefaultHistoryLimit: 50,
			MaxHistoryLimit:     500,
		},
	}
}

// Load loads configuration from file or environment
func Load() (*Config, error) {
	cfg := defaultConfig()

	// Try to load from config file
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment variables
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.ServerAddress = addr
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		cfg.Security.APIKey = apiKey
	}
	if header := os.Getenv("API_KEY_HEADER"); header != "" {
		cfg.Security.APIKeyHeader = header
	}
	if maxBytes := os.Getenv("CLIPBOARD_MAX_CONTENT_BYTES"); maxBytes != "" {
		if n, err := strconv.Atoi(maxBytes); err == nil && n > 0 {
			cfg.Clipboard.MaxContentBytes = n
		}
	}
	if defLimit := os.Getenv("CLIPBOARD_DEFAULT_HISTORY_LIMIT"); defLimit != "" {
		if n, err := strconv.Atoi(defLimit); err == nil && n > 0 {
			cfg.Clipboard.DefaultHistoryLimit = n
		}
	}
	if maxLimit := os.Getenv("CLIPBOARD_MAX_HISTORY_LIMIT"); maxLimit != "" {
		if n, err := strconv.Atoi(maxLimit); err == nil && n > 0 {
			cfg.Clipboard.MaxHistoryLimit = n
		}
	}

	return cfg, nil
}
