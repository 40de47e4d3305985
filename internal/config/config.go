package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig bounds mutation traffic per client within a fixed window.
type RateLimitConfig struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
}

// WorkerConfig drives the background-job runner: where the API lives, how
// often each job fires and which append-only files receive their results.
type WorkerConfig struct {
	APIBaseURL        string
	HeartbeatInterval time.Duration
	LowStockInterval  time.Duration
	ReportInterval    time.Duration
	HeartbeatLog      string
	LowStockLog       string
	ReportLog         string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("RATE_LIMIT_KEY_PREFIX", "ratelimit:mutations")
	viper.SetDefault("WORKER_API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("WORKER_HEARTBEAT_INTERVAL", "5m")
	viper.SetDefault("WORKER_LOW_STOCK_INTERVAL", "12h")
	viper.SetDefault("WORKER_REPORT_INTERVAL", "168h")
	viper.SetDefault("WORKER_HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("WORKER_LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt")
	viper.SetDefault("WORKER_REPORT_LOG", "/tmp/crm_report_log.txt")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests:  viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:    viper.GetDuration("RATE_LIMIT_WINDOW"),
			KeyPrefix: viper.GetString("RATE_LIMIT_KEY_PREFIX"),
		},
		Worker: WorkerConfig{
			APIBaseURL:        viper.GetString("WORKER_API_BASE_URL"),
			HeartbeatInterval: viper.GetDuration("WORKER_HEARTBEAT_INTERVAL"),
			LowStockInterval:  viper.GetDuration("WORKER_LOW_STOCK_INTERVAL"),
			ReportInterval:    viper.GetDuration("WORKER_REPORT_INTERVAL"),
			HeartbeatLog:      viper.GetString("WORKER_HEARTBEAT_LOG"),
			LowStockLog:       viper.GetString("WORKER_LOW_STOCK_LOG"),
			ReportLog:         viper.GetString("WORKER_REPORT_LOG"),
		},
	}
}
