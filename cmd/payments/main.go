package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/piresc/payrecon/internal/pkg/config"
	reqctx "github.com/piresc/payrecon/internal/pkg/context"
	"github.com/piresc/payrecon/internal/pkg/database"
	"github.com/piresc/payrecon/internal/pkg/health"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	natspkg "github.com/piresc/payrecon/internal/pkg/nats"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/payrecon/internal/pkg/nsq"
	"github.com/piresc/payrecon/internal/pkg/server"
	pkgws "github.com/piresc/payrecon/internal/pkg/websocket"
	gateway_http "github.com/piresc/payrecon/services/payments/gateway/http"
	gateway_nats "github.com/piresc/payrecon/services/payments/gateway/nats"
	gateway_nsq "github.com/piresc/payrecon/services/payments/gateway/nsq"
	"github.com/piresc/payrecon/services/payments/handler"
	handler_nats "github.com/piresc/payrecon/services/payments/handler/nats"
	"github.com/piresc/payrecon/services/payments/repository"
	"github.com/piresc/payrecon/services/payments/usecase"
)

func main() {
	appName := "payments-service"
	configPath := "config/payments.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	if configs.Webhook.Secret == "" {
		zapLogger.Fatal("WEBHOOK_SECRET must be set")
	}

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	nsqProducer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}

	// Repository, gateways and usecase
	paymentRepo := repository.NewPaymentRepository(configs, postgresClient.GetDB())
	deliveryGuard := repository.NewDeliveryGuard(redisClient)
	providerGW := gateway_http.NewProviderGateway(configs.Gateway, zapLogger)
	notifier := gateway_nsq.NewNotifier(nsqProducer, configs.NSQ.NotificationTopic)
	events := gateway_nats.NewEventGateway(natsClient, configs.NATS.Subject)

	paymentUC, err := usecase.NewPaymentUC(configs, paymentRepo, deliveryGuard, providerGW, notifier, events, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment use case", logger.Err(err))
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Panic recovery should be first
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.RequestID())
	e.Use(reqctx.RequestIDMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	healthService := health.NewService(appName, zapLogger)
	healthService.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))
	healthService.AddChecker("redis", health.CheckerFunc(redisClient.Ping))
	healthService.AddChecker("nats", health.Pinger(natsClient.Ping))
	healthService.AddChecker("nsq", health.Pinger(nsqProducer.Ping))
	health.RegisterHealthEndpoints(e, healthService)

	// Live status stream fed by reconciled events
	wsManager := pkgws.NewManager(zapLogger)
	natsHandler := handler_nats.NewNatsHandler(natsClient, wsManager, configs.NATS.Subject)
	if err := natsHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	handler.NewHandler(paymentUC, configs, redisClient.GetClient(), wsManager).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	srv.SetShutdownTimeout(time.Duration(configs.Server.ShutdownTimeout) * time.Second)
	srv.OnShutdown(func(context.Context) error {
		natsHandler.Close()
		wsManager.CloseAll()
		return nil
	})
	srv.OnShutdown(func(context.Context) error {
		nsqProducer.Stop()
		return nil
	})
	srv.OnShutdown(func(context.Context) error {
		natsClient.Close()
		return nil
	})
	srv.OnShutdown(func(context.Context) error {
		return redisClient.Close()
	})
	srv.OnShutdown(func(context.Context) error {
		return postgresClient.Close()
	})
	srv.OnShutdown(func(context.Context) error {
		if nrApp != nil {
			nrApp.Shutdown(10 * time.Second)
		}
		return nil
	})

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}
	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
