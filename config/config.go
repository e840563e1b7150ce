package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CatalogSource selects the collaborator implementation: "http"
	// talks to the third-party catalog API, "postgres" reads a local
	// mirror.
	CatalogSource   string        `envconfig:"CATALOG_SOURCE"           default:"http"`
	CatalogURL      string        `envconfig:"CATALOG_URL"              default:"https://fakestoreapi.com"`
	CatalogTimeout  time.Duration `envconfig:"CATALOG_TIMEOUT"          default:"10s"`
	RefreshInterval time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"5m"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`

	// SessionStore selects where browse state lives: "memory" or "redis".
	SessionStore string        `envconfig:"SESSION_STORE" default:"memory"`
	RedisAddr    string        `envconfig:"REDIS_ADDR"    default:"localhost:6379"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL"   default:"24h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: CatalogSource=%s, SessionStore=%s, LogLevel=%s",
			config.CatalogSource, config.SessionStore, config.LogLevel)
	})
	return &config
}
