// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/cart"
	"github.com/your-org/grocery-backend/internal/domain/catalog"
	"github.com/your-org/grocery-backend/internal/domain/order"
	"github.com/your-org/grocery-backend/internal/domain/prefs"
	"github.com/your-org/grocery-backend/internal/domain/review"
	"github.com/your-org/grocery-backend/internal/domain/subscription"
	"github.com/your-org/grocery-backend/internal/domain/user"
	httpserver "github.com/your-org/grocery-backend/internal/interfaces/http"
	"github.com/your-org/grocery-backend/internal/interfaces/http/routes"
	"github.com/your-org/grocery-backend/internal/pkg/logger"
	"github.com/your-org/grocery-backend/internal/pkg/pdf"
	"github.com/your-org/grocery-backend/internal/remote"
	"github.com/your-org/grocery-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.WithField("environment", cfg.App.Environment).
		Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	st, redisClient, err := openStore(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("failed to open store backend")
	}
	defer st.Close()

	remoteClient := remote.NewClient(cfg, appLog)
	catalogService := catalog.NewService()

	authService := user.NewService(st, remoteClient, cfg, appLog)
	addressService := user.NewAddressService(st, remoteClient, appLog)
	cartService := cart.NewService(st, catalogService, remoteClient, appLog)
	subscriptionService := subscription.NewService(st, catalogService, remoteClient, appLog)
	reviewService := review.NewService(st, remoteClient, appLog)
	orderService := order.NewService(st, cartService, addressService, remoteClient, appLog)
	prefsService := prefs.NewService(st, appLog)

	if cfg.Store.SeedDemoData {
		if err := reviewService.SeedDemoReviews(context.Background()); err != nil {
			appLog.WithError(err).Warn("demo review seeding failed")
		}
	}

	services := &routes.Services{
		Catalog:       catalogService,
		Auth:          authService,
		Addresses:     addressService,
		Cart:          cartService,
		Subscriptions: subscriptionService,
		Reviews:       reviewService,
		Orders:        orderService,
		Prefs:         prefsService,
		PDF:           pdf.NewService(cfg),
	}

	server := httpserver.NewServer(cfg, st, redisClient, services, appLog)

	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}

	appLog.Info("server shutdown completed")
}

// openStore builds the configured store backend. The redis client is
// returned separately so the rate limiter can share the connection.
func openStore(cfg *config.Config) (store.Store, *goredis.Client, error) {
	switch cfg.Store.Backend {
	case "redis":
		st, err := store.NewRedisStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Client(), nil
	case "postgres":
		st, err := store.NewPostgresStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "file":
		st, err := store.NewFileStore(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	default:
		return store.NewMemoryStore(), nil, nil
	}
}
