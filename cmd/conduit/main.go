// Command conduit runs the blogging-platform API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/conduit-labs/conduit/api"
	"github.com/conduit-labs/conduit/auth/jwt"
	"github.com/conduit-labs/conduit/auth/password"
	"github.com/conduit-labs/conduit/component"
	"github.com/conduit-labs/conduit/config"
	"github.com/conduit-labs/conduit/database"
	"github.com/conduit-labs/conduit/logger"
	"github.com/conduit-labs/conduit/server"
	"github.com/conduit-labs/conduit/store"
	"github.com/conduit-labs/conduit/version"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Fatal error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting conduit", map[string]interface{}{
		"version":     version.Get().String(),
		"environment": cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewWithContext(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	st := store.New(db)
	if cfg.Database.AutoMigrate {
		if err := st.Migrate(); err != nil {
			return err
		}
	}

	tokens, err := jwt.NewService(cfg.Auth.TokenConfig())
	if err != nil {
		return err
	}
	passwords := password.NewPool(
		password.NewPBKDF2Hasher(),
		cfg.Auth.KDFConcurrency,
		cfg.Auth.KDFMaxWait,
	)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	api.New(st, tokens, passwords, log).RegisterRoutes(srv.GinEngine())

	registry := component.NewRegistry()
	if err := registry.Register(&databaseComponent{db: db}); err != nil {
		return err
	}
	if err := registry.Register(&serverComponent{srv: srv}); err != nil {
		return err
	}
	srv.GinEngine().GET("/health", healthHandler(cfg.Name, registry))

	if err := registry.StartAll(ctx); err != nil {
		stopErr := registry.StopAll(context.Background())
		if stopErr != nil {
			log.Error("Shutdown after failed start", map[string]interface{}{
				"error": stopErr.Error(),
			})
		}
		return err
	}

	log.Info("Conduit ready", map[string]interface{}{"addr": srv.Addr()})
	<-ctx.Done()

	log.Info("Shutdown signal received")
	return registry.StopAll(context.Background())
}

// healthHandler reports component health: 200 when everything is healthy,
// 503 otherwise.
func healthHandler(serviceName string, registry *component.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		components := registry.HealthAll(c.Request.Context())
		status := http.StatusOK
		for _, h := range components {
			if h.Status != component.StatusHealthy {
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, gin.H{
			"service":    serviceName,
			"version":    version.Get().String(),
			"components": components,
		})
	}
}
