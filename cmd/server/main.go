package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cym-store/internal/auth"
	"cym-store/internal/config"
	"cym-store/internal/customer"
	"cym-store/internal/db"
	"cym-store/internal/events"
	"cym-store/internal/httpapi"
	"cym-store/internal/logger"
	"cym-store/internal/metrics"
	"cym-store/internal/middleware"
	"cym-store/internal/order"
	"cym-store/internal/product"
	"cym-store/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Swapped in tests.
var (
	initDBFunc      = db.InitDB
	migrateFunc     = db.RunMigrations
	dialBrokerFunc  = dialBroker
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	handler  http.Handler
	limiter  *middleware.RateLimiter
	products product.Service
}

func newApp(cfg *config.Config, database *sql.DB, publisher events.Publisher) (*app, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	issuer, err := auth.NewIssuer(secret)
	if err != nil {
		return nil, err
	}

	checkout := &metrics.Checkout{}

	productSvc := product.NewService(product.NewRepository(database))
	customerSvc := customer.NewService(customer.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database), customerSvc, publisher, checkout)
	statsSvc := metrics.NewService(metrics.NewRepository(database), checkout)

	h := httpapi.NewHandler(httpapi.Deps{
		Products:      productSvc,
		Orders:        orderSvc,
		Customers:     customerSvc,
		Stats:         statsSvc,
		Backend:       storage.NewPostgresBackend(database),
		MerchantPhone: cfg.AdminWhatsApp,
	})

	limiter := middleware.NewRateLimiter(httpapi.PathAdminLogin, httpapi.PathCheckout)

	router := httpapi.NewRouter(h, httpapi.RouterOptions{
		Issuer:       issuer,
		Limiter:      limiter,
		CORSOrigin:   cfg.CORSOrigin,
		SecureCookie: cfg.AppEnv == "production",
	})

	return &app{handler: router, limiter: limiter, products: productSvc}, nil
}

// dialBroker falls back to a no-op publisher when no broker is configured.
func dialBroker(url string) (events.Publisher, func() error, error) {
	if url == "" {
		return events.NopPublisher{}, func() error { return nil }, nil
	}
	p, closeFn, err := events.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	return p, closeFn, nil
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	lg := logger.L()

	database := initDBFunc(cfg)
	defer database.Close()

	if cfg.RunMigrations {
		if err := migrateFunc(database, db.MigrateUp); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	publisher, closeBroker, err := dialBrokerFunc(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBroker(); err != nil {
			lg.Warn("closing broker connection", zap.Error(err))
		}
	}()

	a, err := newApp(cfg, database, publisher)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDemoData {
		if _, err := a.products.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	go a.limiter.Cleanup(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      a.handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("cym-store listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
