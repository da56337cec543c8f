package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads the dotenv file at configPath for local runs and builds
// the application configuration from the environment.
func InitConfig(configPath string) *models.Config {
	v := newViper()
	if v.GetString("APP_ENV") == "local" && configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "gps-tracker")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("APP_VERSION", "dev")

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", 2000)
	// PORT is what the device firmware deployments set
	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "")
	v.SetDefault("FRONTEND_URL", "")

	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("STORE_TIMEOUT", "5s")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 2)
	v.SetDefault("SQLITE_PATH", "./gpstracker.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_KEY_PREFIX", "gps")

	v.SetDefault("RETENTION_CAP", 100)
	v.SetDefault("RETENTION_INTERVAL", "0s")

	v.SetDefault("VALIDATION_STRICT_RANGE", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")
	return v
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")
	configs.Server.AllowedOrigin = firstNonEmpty(v.GetString("CORS_ALLOWED_ORIGIN"), v.GetString("FRONTEND_URL"), "*")

	// Store config
	configs.Store.Driver = strings.ToLower(v.GetString("STORE_DRIVER"))
	configs.Store.Timeout = getDuration(v, "STORE_TIMEOUT", 5*time.Second)

	// Database config
	configs.Database.URL = v.GetString("DATABASE_URL")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")
	configs.SQLite.Path = v.GetString("SQLITE_PATH")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	configs.Redis.KeyPrefix = v.GetString("REDIS_KEY_PREFIX")

	// Retention config
	configs.Retention.Cap = v.GetInt("RETENTION_CAP")
	if configs.Retention.Cap < 0 {
		log.Printf("Warning: negative RETENTION_CAP %d, using 0", configs.Retention.Cap)
		configs.Retention.Cap = 0
	}
	configs.Retention.Interval = getDuration(v, "RETENTION_INTERVAL", 0)

	configs.Validation.StrictRange = v.GetBool("VALIDATION_STRICT_RANGE")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

// getDuration accepts Go duration strings ("30s") as well as plain seconds ("30")
func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs := v.GetInt(key); secs > 0 || raw == "0" {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
