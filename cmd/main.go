package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/internal/clients"
	"storefront/internal/delivery"
	"storefront/internal/domain"
	"storefront/internal/location"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting storefront service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// --- Catalog collaborator ---
	catalogSource := buildCatalogSource(cfg, logger)
	catalogUseCase := usecase.NewCatalogUseCase(catalogSource, m, logger)

	refreshCtx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
	if err := catalogUseCase.Refresh(refreshCtx); err != nil {
		// Degraded start: the snapshot stays empty until a later
		// refresh succeeds, and the error is surfaced on every view.
		logger.Warnf("Initial catalog refresh failed: %v", err)
	}
	cancel()
	go refreshLoop(ctx, catalogUseCase, cfg, logger)

	// --- Session store ---
	sessionRepo := buildSessionRepository(cfg, logger)
	cartUseCase := usecase.NewCartUseCase(sessionRepo, catalogSource, m, logger)

	// --- Location synchronizer ---
	synchronizer := location.NewSynchronizer(logger)

	// --- HTTP delivery ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))
	router.Use(delivery.MetricsMiddleware(m))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(delivery.SessionMiddleware(logger))

	delivery.NewCatalogHandler(catalogUseCase, logger).RegisterRoutes(router)
	delivery.NewViewHandler(catalogUseCase, sessionRepo, synchronizer, m, logger).RegisterRoutes(router)
	delivery.NewCartHandler(cartUseCase, logger).RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	logger.Infof("Storefront listening on %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("FATAL: Failed to start storefront: %v", err)
	}
}

func buildCatalogSource(cfg *config.Config, logger *logrus.Logger) domain.CatalogSource {
	switch cfg.CatalogSource {
	case "postgres":
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("FATAL: Failed to connect to catalog database: %v", err)
		}
		logger.Info("Using postgres catalog source")
		return repository.NewPostgresCatalogRepository(database, logger)
	default:
		logger.Infof("Using HTTP catalog source: %s", cfg.CatalogURL)
		return clients.NewCatalogHTTPClient(cfg.CatalogURL, cfg.CatalogTimeout, logger)
	}
}

func buildSessionRepository(cfg *config.Config, logger *logrus.Logger) domain.SessionRepository {
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Fatalf("FATAL: Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
		}
		logger.Infof("Using redis session store at %s", cfg.RedisAddr)
		return repository.NewRedisSessionRepository(rdb, cfg.SessionTTL, logger)
	default:
		logger.Info("Using in-memory session store")
		return repository.NewMemorySessionRepository(logger)
	}
}

// refreshLoop re-fetches the catalog snapshot on an interval until the
// signal context is cancelled. Each attempt carries its own timeout so
// a hung collaborator cannot stall the loop.
func refreshLoop(ctx context.Context, catalog usecase.CatalogUseCase, cfg *config.Config, logger *logrus.Logger) {
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Catalog refresh loop stopped")
			return
		case <-ticker.C:
			attemptCtx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
			if err := catalog.Refresh(attemptCtx); err != nil {
				logger.Warnf("Periodic catalog refresh failed: %v", err)
			}
			cancel()
		}
	}
}
