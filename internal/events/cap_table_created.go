package events

import "time"

const CapTableCreatedTopic = "equity.cap_table.created.v1"

type CapTableCreatedEvent struct {
	EventType          string    `json:"event_type"`
	CompanyID          string    `json:"company_id"`
	InvestorCount      int       `json:"investor_count"`
	FullyDilutedShares int64     `json:"fully_diluted_shares"`
	OccurredAt         time.Time `json:"occurred_at"`
}
