package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant-api/config"
	"restaurant-api/handlers"
	"restaurant-api/logger"
	"restaurant-api/middleware"
	"restaurant-api/routes"
	"restaurant-api/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Error("startup", "failed to load configuration", "", nil, err)
		os.Exit(1)
	}
	config.Apply(cfg)

	log := logger.New("restaurant-api", os.Stdout, parseLevel(cfg.LogLevel))
	logger.SetDefault(log)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("shutdown", "server stopped with error", "", nil, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	// Initialize database
	if err := config.InitDB(cfg.DB); err != nil {
		return err
	}
	if err := config.SeedAdmin(config.DB, cfg.Admin); err != nil {
		return err
	}
	if cfg.SeedMenu {
		n, err := config.SeedMenu(config.DB)
		if err != nil {
			return err
		}
		log.Info("seed_menu", "sample menu seeded", "", map[string]any{"created": n})
	}

	images, err := openImageStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	handlers.Images = images

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.CORS(cfg.CORS.AllowOrigins))
	if isLocalStorage(cfg.Storage) {
		r.Static(cfg.Storage.PublicURL, cfg.Storage.UploadDir)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Management API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Restaurant Management API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	routes.SetupRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("startup", "server listening", "", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutdown", "shutting down server", "", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// isLocalStorage reports whether images are written to UploadDir and must be
// served by the router.
func isLocalStorage(cfg config.StorageConfig) bool {
	return cfg.Driver == "" || cfg.Driver == "local"
}

func openImageStore(ctx context.Context, cfg config.StorageConfig) (storage.ImageStore, error) {
	switch {
	case cfg.Driver == "s3":
		return storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.PublicURL)
	case isLocalStorage(cfg):
		return storage.NewLocalStore(cfg.UploadDir, cfg.PublicURL)
	default:
		return nil, errors.New("unsupported storage driver " + cfg.Driver)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
