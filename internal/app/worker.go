package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/company"
	"go-hrpay/internal/config"
	"go-hrpay/internal/jobs"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/messaging/kafka/producer"
	"go-hrpay/internal/notification"
	"go-hrpay/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka and runs the daily attendance
// evaluator until a shutdown signal arrives.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	// The evaluator reads settings straight from the database; no cache here.
	companyService := company.NewService(sqlDB, company.NewRepository(gormDB), nil, nil, nil)
	evaluator := attendance.NewEvaluator(attendance.NewRepository(gormDB), cfg.Timezone)
	alerter := notification.NewAlerter(notification.TelegramConfig{
		Token:  cfg.TelegramBotToken,
		ChatID: cfg.TelegramAlertChatID,
	})
	scheduler := jobs.NewEvaluatorScheduler(companyService, evaluator, cfg.EvaluatorInterval).
		WithAlerter(alerter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)
	go scheduler.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
