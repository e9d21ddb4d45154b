package environments

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	WSAPME   WSAPMEConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	Poller   PollerConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
}

// WSAPMEConfig holds the vendor API settings. UserToken is not
// validated at startup; the client rejects calls when it is empty.
type WSAPMEConfig struct {
	APIBaseURL        string
	MasterBaseURL     string
	UserToken         string
	DeviceID          string
	Timeout           time.Duration
	AllowedRecipients []string
	DefaultMessage    string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type StoreConfig struct {
	Capacity int
}

type PollerConfig struct {
	FirstCheckDelay time.Duration
	Interval        time.Duration
	MaxFailures     int
}

type AuthConfig struct {
	DashboardAPIKey string
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "3000"),
		},
		WSAPME: WSAPMEConfig{
			APIBaseURL:        GetEnv("WSAPME_API_BASE_URL", "https://api.wsapme.com"),
			MasterBaseURL:     GetEnv("WSAPME_MASTER_BASE_URL", "https://master.wsapme.com"),
			UserToken:         GetEnv("WSAPME_USER_TOKEN", ""),
			DeviceID:          GetEnv("WSAPME_DEVICE_ID", "5850"),
			Timeout:           time.Duration(GetEnvAsInt("WSAPME_TIMEOUT_SECONDS", 0)) * time.Second,
			AllowedRecipients: GetEnvAsList("WSAPME_ALLOWED_RECIPIENTS", nil),
			DefaultMessage:    GetEnv("WSAPME_DEFAULT_MESSAGE", "This is an automated message for testing. Do ignore this!"),
		},
		Database: DatabaseConfig{
			Enabled:  GetEnvAsBool("DB_ENABLED", false),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "blast"),
			Password: GetEnv("DB_PASSWORD", "blast123"),
			DBName:   GetEnv("DB_NAME", "blast_tracker"),
		},
		Redis: RedisConfig{
			Enabled:  GetEnvAsBool("REDIS_ENABLED", false),
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Store: StoreConfig{
			Capacity: GetEnvAsInt("WEBHOOK_STORE_CAPACITY", 100),
		},
		Poller: PollerConfig{
			FirstCheckDelay: GetEnvAsDuration("POLLER_FIRST_CHECK_DELAY", 3*time.Second),
			Interval:        GetEnvAsDuration("POLLER_INTERVAL", 5*time.Second),
			MaxFailures:     GetEnvAsInt("POLLER_MAX_FAILURES", 3),
		},
		Auth: AuthConfig{
			DashboardAPIKey: GetEnv("DASHBOARD_API_KEY", ""),
		},
		Log: LogConfig{
			Level: GetEnv("LOG_LEVEL", "info"),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsList splits a comma separated value, dropping blank entries.
func GetEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
