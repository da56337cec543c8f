package models

import "time"

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	SQLite     SQLiteConfig
	Redis      RedisConfig
	Retention  RetentionConfig
	Validation ValidationConfig
	Logger     LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int // in seconds
	WriteTimeout    int // in seconds
	ShutdownTimeout int // in seconds
	AllowedOrigin   string
}

// StoreConfig selects and tunes the location store backend
type StoreConfig struct {
	Driver  string // postgres, sqlite or redis
	Timeout time.Duration
}

// DatabaseConfig contains PostgreSQL connection configuration
type DatabaseConfig struct {
	URL       string
	MaxConns  int
	IdleConns int
}

// SQLiteConfig contains the embedded database configuration
type SQLiteConfig struct {
	Path string
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

// RetentionConfig controls how many records survive a cleanup
type RetentionConfig struct {
	Cap      int
	Interval time.Duration // zero disables the periodic job
}

// ValidationConfig controls how strictly incoming reports are checked
type ValidationConfig struct {
	StrictRange bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
