package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hrpay/internal/config"
	"go-hrpay/internal/events"
	"go-hrpay/internal/leave"
	"go-hrpay/internal/messaging/kafka/consumer"
	"go-hrpay/internal/notification"
	"go-hrpay/internal/salary"
	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/shared/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupPrefix = "go-hrpay-"

// RunConsumer renders payslips for paid salaries and emails leave decisions.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	mailer := notification.NewMailer(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	payslips := salary.NewPayslipService(salary.NewRepository(gormDB), storage.NewLocal(cfg.UploadDir), mailer)
	notifier := leave.NewNotifier(leave.NewRepository(gormDB), mailer)

	salaryReader := newReader(cfg.Kafka.Broker, events.SalaryPaidTopic, "payslip")
	defer salaryReader.Close()

	leaveReader := newReader(cfg.Kafka.Broker, events.LeaveStatusChangedTopic, "leave-notification")
	defer leaveReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSalaryPaid(ctx, salaryReader, payslips, logger)
	go consumer.ConsumeLeaveStatusChanged(ctx, leaveReader, notifier, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
