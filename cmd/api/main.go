package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/events"
	"github.com/solemate-shop/solemate-api/internal/handlers"
	"github.com/solemate-shop/solemate-api/internal/liqpay"
	"github.com/solemate-shop/solemate-api/internal/logging"
	"github.com/solemate-shop/solemate-api/internal/migrate"
	"github.com/solemate-shop/solemate-api/internal/repository"
	"github.com/solemate-shop/solemate-api/internal/server"
	"github.com/solemate-shop/solemate-api/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrate.Up(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	orderRepo := repository.NewPostgresOrderRepository(db, logger)
	userRepo := repository.NewPostgresUserRepository(db, logger)
	productRepo := repository.NewPostgresProductRepository(db, logger)
	cartRepo := repository.NewPostgresCartRepository(db, logger)

	orderCache := repository.NewRedisOrderCache(redisClient, cfg.Redis.TTL, logger)
	cartCache := repository.NewRedisCartCache(redisClient, cfg.Redis.TTL, logger)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	liqpayClient := liqpay.New(liqpay.Config{
		PublicKey:  cfg.LiqPay.PublicKey,
		PrivateKey: cfg.LiqPay.PrivateKey,
		Sandbox:    cfg.LiqPay.Sandbox,
		ResultURL:  cfg.Server.FrontendURL + "/order-success",
		ServerURL:  cfg.Server.BackendURL + "/api/payment/callback",
	})

	authService := service.NewAuthService(userRepo, cfg.Auth, logger)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, cartCache, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, orderCache, cartCache, publisher, cfg.Features.EnableOrderCaching, logger)
	paymentService := service.NewPaymentService(orderRepo, orderCache, liqpayClient, publisher, cfg.Features.EnableOrderCaching, logger)

	ready := func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	}

	h := handlers.NewHandlers(authService, productService, cartService, orderService, paymentService, cfg, logger, ready)

	srv := server.NewServer(cfg, h, authService, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))
	err = retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("database not ready, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name))

	return db, nil
}
