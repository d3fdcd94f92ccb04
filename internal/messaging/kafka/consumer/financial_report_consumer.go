package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-flexile/internal/events"
	"go-flexile/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	eventDateLayout = "2006-01-02"
	maxRetrySteps   = 10
)

// retryInterval is the backoff step between attempts on one message.
var retryInterval = 15 * time.Second

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ReportGenerator interface {
	GenerateAndStore(ctx context.Context, start, end time.Time) (string, error)
}

// ConsumeFinancialReportRequested builds and stores the financial report
// for every request event until ctx is cancelled. Infrastructure failures
// are retried on the same message with a growing delay, so no later
// message is committed past it. A message abandoned because ctx ended stays
// uncommitted and is redelivered.
func ConsumeFinancialReportRequested(
	ctx context.Context,
	reader MessageReader,
	generator ReportGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.financial_report")
	log.Info("financial report consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("financial report consumer stopped")
				return
			}
			log.Error("fetch financial report message failed", zap.Error(err))
			continue
		}

		handleFinancialReportRequested(ctx, reader, generator, msg, log)
	}
}

func handleFinancialReportRequested(
	ctx context.Context,
	reader MessageReader,
	generator ReportGenerator,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.FinancialReportRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode financial report event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	start, errStart := time.Parse(eventDateLayout, event.StartDate)
	end, errEnd := time.Parse(eventDateLayout, event.EndDate)
	if errStart != nil || errEnd != nil {
		log.Error("financial report event has malformed dates",
			zap.String("start_date", event.StartDate),
			zap.String("end_date", event.EndDate),
		)
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	var period string
	for attempt := 1; ; attempt++ {
		var err error
		period, err = generator.GenerateAndStore(ctx, start, end)
		if err == nil {
			break
		}
		if isPermanent(err) {
			log.Warn("financial report request rejected, skipping",
				zap.String("start_date", event.StartDate),
				zap.String("end_date", event.EndDate),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			return
		}

		delay := retryDelay(attempt)
		log.Error("generate financial report failed, retrying",
			zap.String("start_date", event.StartDate),
			zap.String("end_date", event.EndDate),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !wait(ctx, delay) {
			log.Info("financial report retry abandoned, message left for redelivery",
				zap.Int64("offset", msg.Offset),
			)
			return
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit financial report message failed", zap.Error(err))
		return
	}

	log.Info("financial report stored",
		zap.String("period", period),
		zap.String("requested_by", event.RequestedBy),
	)
}

func retryDelay(attempt int) time.Duration {
	return time.Duration(min(attempt, maxRetrySteps)) * retryInterval
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// isPermanent reports whether retrying err can never succeed.
func isPermanent(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == apperror.CodeInvalidInput
}
