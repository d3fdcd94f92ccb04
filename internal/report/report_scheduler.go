package report

import (
	"context"
	"time"

	"go-flexile/internal/events"
	"go-flexile/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultCronSpec = "0 0 1 * *"

	scheduledRequester = "scheduler"
	reportAggregate    = "financial_report"
)

// PreviousMonth returns the first and last day of the calendar month
// before now.
func PreviousMonth(now time.Time) (time.Time, time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := firstOfThisMonth.AddDate(0, -1, 0)
	end := firstOfThisMonth.AddDate(0, 0, -1)
	return start, end
}

// EnqueueMonthlyReport queues a report request for the previous calendar
// month.
func EnqueueMonthlyReport(ctx context.Context, outbox kafka.OutboxRepository, now time.Time) (events.FinancialReportRequestedEvent, error) {
	start, end := PreviousMonth(now)
	event := events.FinancialReportRequestedEvent{
		EventType:   "financial_report_requested",
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		RequestedBy: scheduledRequester,
		OccurredAt:  now.UTC(),
	}

	outboxEvent, err := kafka.NewOutboxEvent(
		uuid.NewString(),
		reportAggregate,
		start.Format(PeriodLayout),
		event.EventType,
		events.FinancialReportRequestedTopic,
		event,
	)
	if err != nil {
		return event, err
	}
	return event, outbox.Create(ctx, outboxEvent)
}

// NewMonthlyScheduler returns a cron that enqueues last month's report on
// every tick of the cron expression. The caller starts and stops it.
func NewMonthlyScheduler(spec string, outbox kafka.OutboxRepository, logger *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultCronSpec
	}
	log := logger.Named("report.scheduler")

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		event, err := EnqueueMonthlyReport(ctx, outbox, time.Now())
		if err != nil {
			log.Error("enqueue monthly financial report failed", zap.Error(err))
			return
		}
		log.Info("monthly financial report enqueued",
			zap.String("start_date", event.StartDate),
			zap.String("end_date", event.EndDate),
		)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
