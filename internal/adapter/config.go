package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the client's view of the catalog API
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // Per-operation deadline
}

// ServerConfig holds shelfd configuration
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
	DBPath   string `mapstructure:"db_path"` // Empty keeps the catalog in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // "-" logs to stderr
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:     ":8000",
			BasePath: "/api",
			DBPath:   filepath.Join(defaultDataPath(), "shelfd.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "shelf.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for logs and the shelfd database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shelf")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shelf")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Defaults make every key visible to AutomaticEnv
	setValues(v.SetDefault, cfg)

	// Environment variable overrides, e.g. SHELF_API_BASE_URL
	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in the default config directory and
// returns the file path
func SaveConfig(cfg *Config) (string, error) {
	return saveConfig(viper.New(), defaultConfigPath(), cfg)
}

func saveConfig(v *viper.Viper, dir string, cfg *Config) (string, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	setValues(v.Set, cfg)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// setValues passes every key with its snake_case name to set
func setValues(set func(key string, value any), cfg *Config) {
	set("api.base_url", cfg.API.BaseURL)
	set("api.timeout", cfg.API.Timeout.String())

	set("server.addr", cfg.Server.Addr)
	set("server.base_path", cfg.Server.BasePath)
	set("server.db_path", cfg.Server.DBPath)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}
