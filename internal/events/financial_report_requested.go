package events

import "time"

const FinancialReportRequestedTopic = "finance.report.requested.v1"

type FinancialReportRequestedEvent struct {
	EventType   string    `json:"event_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
