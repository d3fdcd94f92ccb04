package app

import (
	"context"
	"os"
	"time"

	"go-flexile/internal/messaging/kafka"
	"go-flexile/internal/messaging/kafka/producer"
	"go-flexile/internal/report"
	"go-flexile/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka and schedules the monthly
// financial report.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	_, sqlDB, err := connectDatabase()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker, err := requireEnv("KAFKA_BROKER")
	if err != nil {
		return err
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	scheduler, err := report.NewMonthlyScheduler(os.Getenv("REPORT_CRON_SPEC"), outboxRepo, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, producer.WorkerConfig{
		PollInterval: envDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		BatchSize:    envInt("OUTBOX_BATCH_SIZE", 50),
	})
	scheduler.Start()

	sig := waitForSignal()
	logger.Info("worker shutting down", zap.String("signal", sig.String()))

	<-scheduler.Stop().Done()
	cancel()
	return nil
}
