package events

import "time"

const DividendRoundFinalizedTopic = "equity.dividend_round.finalized.v1"

type DividendRoundFinalizedEvent struct {
	EventType             string    `json:"event_type"`
	CompanyID             string    `json:"company_id"`
	DividendComputationID string    `json:"dividend_computation_id"`
	DividendRoundID       string    `json:"dividend_round_id"`
	TotalAmountInCents    int64     `json:"total_amount_in_cents"`
	NumberOfDividends     int       `json:"number_of_dividends"`
	OccurredAt            time.Time `json:"occurred_at"`
}
