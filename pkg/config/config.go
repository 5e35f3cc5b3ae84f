package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Reference ReferenceConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxConns       int32         // 0 keeps the pgxpool default
	ConnectTimeout time.Duration // 0 keeps the driver default
}

// ReferenceConfig points at the static tables the engine reads.
type ReferenceConfig struct {
	BaselineFile string // optional YAML override of the built-in baselines
	DataFile     string // seed input for factors, vehicles and programs
	DefaultState string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "0"))
	connectTimeout, _ := strconv.Atoi(getEnv("DB_CONNECT_TIMEOUT", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5001"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "carbon_calculator"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxConns:       int32(maxConns),
			ConnectTimeout: time.Duration(connectTimeout) * time.Second,
		},
		Reference: ReferenceConfig{
			BaselineFile: getEnv("BASELINE_FILE", ""),
			DataFile:     getEnv("REFERENCE_DATA_FILE", "data/reference.yaml"),
			DefaultState: getEnv("DEFAULT_STATE", "CA"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// DSN returns the libpq-style connection string for the database.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
