package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultLogFilePath        = "requests.log"
	DefaultDatabaseBufferSize = 1000
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Logging    LoggingConfig
	RequestLog RequestLogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Environment string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	UserTTL time.Duration
}

type LoggingConfig struct {
	Level string
}

// RequestLogConfig selects the sinks of the request logger. It is built once at
// startup and only read afterwards.
type RequestLogConfig struct {
	LogToConsole bool
	LogToFile    bool
	LogFilePath  string

	LogToDatabase      bool
	DatabaseBufferSize int
}

// DefaultRequestLogConfig returns console-only logging to requests.log.
func DefaultRequestLogConfig() RequestLogConfig {
	return RequestLogConfig{
		LogToConsole:       true,
		LogToFile:          false,
		LogFilePath:        DefaultLogFilePath,
		LogToDatabase:      false,
		DatabaseBufferSize: DefaultDatabaseBufferSize,
	}
}

// RequestLogFromEnv never fails: a missing or malformed variable keeps its default.
func RequestLogFromEnv() RequestLogConfig {
	def := DefaultRequestLogConfig()

	return RequestLogConfig{
		LogToConsole:       getEnvBool("LOG_REQUESTS_CONSOLE", def.LogToConsole),
		LogToFile:          getEnvBool("LOG_REQUESTS_FILE", def.LogToFile),
		LogFilePath:        getEnv("LOG_REQUESTS_FILE_PATH", def.LogFilePath),
		LogToDatabase:      getEnvBool("LOG_REQUESTS_DB", def.LogToDatabase),
		DatabaseBufferSize: getEnvPositiveInt("LOG_REQUESTS_DB_BUFFER", def.DatabaseBufferSize),
	}
}

// Load resolves the process configuration from the environment. Only a PORT
// that is not a valid port number is an error.
func Load() (*Config, error) {
	port, err := parsePort(getEnv("PORT", "8000"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("HOST", "127.0.0.1"),
			Port:        port,
			Environment: getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=libretune port=5432 sslmode=disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			UserTTL: getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		RequestLog: RequestLogFromEnv(),
	}, nil
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (r RedisConfig) GetRedisAddr() string {
	return r.Host + ":" + r.Port
}

func parsePort(raw string) (int, error) {
	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("PORT must be a number between 0 and 65535, got %q: %w", raw, err)
	}
	return int(port), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvPositiveInt(key string, fallback int) int {
	v := getEnvInt(key, fallback)
	if v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
