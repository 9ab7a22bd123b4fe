package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/payrecon/internal/pkg/config"
	"github.com/piresc/payrecon/internal/pkg/health"
	"github.com/piresc/payrecon/internal/pkg/logger"
	"github.com/piresc/payrecon/internal/pkg/middleware"
	nrpkg "github.com/piresc/payrecon/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/payrecon/internal/pkg/nsq"
	"github.com/piresc/payrecon/internal/pkg/server"
	"github.com/piresc/payrecon/services/mailer"
)

func main() {
	appName := "mailer-worker"
	configPath := "config/mailer.env"
	configs := config.InitConfig(configPath)

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

	m, err := mailer.NewMailer(mailer.NewDialer(configs.SMTP), configs.SMTP, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize mailer", logger.Err(err))
	}

	consumer, err := nsqpkg.NewConsumer(nsqpkg.ConsumerConfig{
		Topic:       configs.NSQ.NotificationTopic,
		Channel:     configs.NSQ.MailerChannel,
		Address:     configs.NSQ.Address,
		MaxAttempts: 5,
	}, func(ctx context.Context, body []byte) error {
		ctx, end := nrpkg.StartBackgroundTransaction(ctx, nrApp, "mailer/notification")
		defer end()
		return m.Handle(ctx, body)
	})
	if err != nil {
		zapLogger.Fatal("Failed to subscribe to notifications", logger.Err(err))
	}

	// Health endpoints only
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))

	healthService := health.NewService(appName, zapLogger)
	health.RegisterHealthEndpoints(e, healthService)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	srv.SetShutdownTimeout(time.Duration(configs.Server.ShutdownTimeout) * time.Second)
	srv.OnShutdown(func(context.Context) error {
		consumer.Stop()
		return nil
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
	zapLogger.Info("Mailer exiting gracefully")
	_ = zapLogger.Sync()
}
