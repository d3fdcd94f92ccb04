package app

import (
	"context"
	"os"

	"go-flexile/internal/events"
	"go-flexile/internal/messaging/kafka/consumer"
	"go-flexile/internal/report"
	"go-flexile/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const financialReportGroupID = "go-flexile-financial-report"

// RunConsumer generates requested financial reports and caches them in
// Redis.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, sqlDB, err := connectDatabase()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker, err := requireEnv("KAFKA_BROKER")
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), connectRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	reportService := report.NewService(report.NewRepository(gormDB), redisClient, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.FinancialReportRequestedTopic,
		GroupID:        financialReportGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeFinancialReportRequested(ctx, reader, reportService, logger)

	sig := waitForSignal()
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	cancel()
	return nil
}
