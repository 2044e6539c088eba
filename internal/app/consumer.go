package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka/consumer"
	"github.com/kingxjullien14/nkp-ems/internal/notification"
	"github.com/kingxjullien14/nkp-ems/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupID = "nkp-ems-notifications"

// RunConsumer turns domain events into stored notifications.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
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

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        consumerGroupID,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	lifecycleReader := newReader(events.EmployeeCreatedTopic)
	defer lifecycleReader.Close()
	leaveReader := newReader(events.LeaveDecidedTopic)
	defer leaveReader.Close()
	payrollReader := newReader(events.PayrollGeneratedTopic)
	defer payrollReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, notificationService, logger)
	go consumer.ConsumeLeaveDecided(ctx, leaveReader, notificationService, logger)
	go consumer.ConsumePayrollGenerated(ctx, payrollReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
