package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"streak-pickem-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Authentication configuration
	Auth AuthConfig `json:"auth"`

	// Application configuration
	App AppConfig `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	UseTLS      bool   `json:"use_tls"`
	BehindProxy bool   `json:"behind_proxy"`
	CertFile    string `json:"cert_file"`
	KeyFile     string `json:"key_file"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URI      string        `json:"uri"`
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
	LogDir      string `json:"log_dir"`
	EnableFile  bool   `json:"enable_file"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	AppURL         string `json:"app_url"`
	IsDevelopment  bool   `json:"is_development"`
	SportOverride  string `json:"sport_override"`
	SimulationOnly bool   `json:"simulation_only"`
	ResumeChecks   bool   `json:"resume_checks"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Don't treat missing .env as an error
		logging.Warnf("Could not load .env file: %v", err)
	}

	// Determine if we're in development mode first
	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	// Get server port with development override
	serverPort := getEnv("SERVER_PORT", "8080")
	if isDevelopment {
		if develPort := getEnv("DEVEL_SERVER_PORT", ""); develPort != "" {
			serverPort = develPort
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:        serverPort,
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			UseTLS:      getBoolEnv("USE_TLS", false),
			BehindProxy: getBoolEnv("BEHIND_PROXY", false),
			CertFile:    getEnv("TLS_CERT_FILE", "server.crt"),
			KeyFile:     getEnv("TLS_KEY_FILE", "server.key"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			URI:      getEnv("MONGODB_URI", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "streak_pickem"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "debug"),
			Prefix:      getEnv("LOG_PREFIX", "streak-pickem"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
			LogDir:      getEnv("LOG_DIR", "./logs"),
			EnableFile:  getBoolEnv("LOG_FILE", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		App: AppConfig{
			AppURL:         getEnv("APP_URL", "http://localhost:8080"),
			IsDevelopment:  isDevelopment,
			SportOverride:  getEnv("SPORT_OVERRIDE", ""),
			SimulationOnly: getBoolEnv("SIMULATION_ONLY", false),
			ResumeChecks:   getBoolEnv("RESUME_CHECKS", true),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Server.UseTLS && !c.Server.BehindProxy {
		if c.Server.CertFile == "" || c.Server.KeyFile == "" {
			return fmt.Errorf("TLS certificate and key files are required when USE_TLS=true")
		}

		// Check if certificate files exist
		if _, err := os.Stat(c.Server.CertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file not found: %s", c.Server.CertFile)
		}
		if _, err := os.Stat(c.Server.KeyFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS key file not found: %s", c.Server.KeyFile)
		}
	}

	// Validate database configuration
	if c.Database.URI == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port == "" {
			return fmt.Errorf("database port is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Validate authentication
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == "your-secret-key-change-in-production" && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (TLS: %t, Behind Proxy: %t, Environment: %s)",
		c.GetServerAddress(), c.Server.UseTLS, c.Server.BehindProxy, c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor)
	logging.Infof("App: URL=%s, Development=%t, SportOverride=%q, SimulationOnly=%t, ResumeChecks=%t",
		c.App.AppURL, c.App.IsDevelopment, c.App.SportOverride, c.App.SimulationOnly, c.App.ResumeChecks)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
