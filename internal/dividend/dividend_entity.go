package dividend

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoundStatusIssued = "Issued"
	// RoundStatusPaid is set once every dividend of the round has been paid out.
	RoundStatusPaid = "Paid"

	DividendStatusIssued = "Issued"
)

// DividendComputation is a draft distribution. It becomes immutable once
// FinalizedAt is set.
type DividendComputation struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID            string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CompanyID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmountInUSD      decimal.Decimal `gorm:"column:total_amount_in_usd;type:numeric(20,2);not null"`
	DividendsIssuanceDate time.Time       `gorm:"type:date;not null"`
	ReturnOfCapital       bool            `gorm:"not null;default:false"`
	TotalFeesCents        int64           `gorm:"type:bigint;not null;default:0"`
	DividendRoundID       *uuid.UUID      `gorm:"type:uuid"`
	FinalizedAt           *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (DividendComputation) TableName() string {
	return "dividend_computations"
}

func (c DividendComputation) IsFinalized() bool {
	return c.FinalizedAt != nil
}

// DividendComputationOutput is one investor's share of a computation for
// one share class. An investor can have several outputs.
type DividendComputationOutput struct {
	ID                           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DividendComputationID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyInvestorID            uuid.UUID       `gorm:"type:uuid;not null"`
	ShareClass                   string          `gorm:"type:varchar(100)"`
	NumberOfShares               int64           `gorm:"type:bigint;not null"`
	PreferredDividendAmountInUSD decimal.Decimal `gorm:"column:preferred_dividend_amount_in_usd;type:numeric(20,2);not null"`
	DividendAmountInUSD          decimal.Decimal `gorm:"column:dividend_amount_in_usd;type:numeric(20,2);not null"`
	QualifiedDividendAmountUSD   decimal.Decimal `gorm:"column:qualified_dividend_amount_usd;type:numeric(20,2);not null"`
	TotalAmountInUSD             decimal.Decimal `gorm:"column:total_amount_in_usd;type:numeric(20,2);not null"`
	InvestmentAmountCents        int64           `gorm:"type:bigint;not null;default:0"`
	CreatedAt                    time.Time       `gorm:"autoCreateTime"`
}

func (DividendComputationOutput) TableName() string {
	return "dividend_computation_outputs"
}

type DividendRound struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID           string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CompanyID            uuid.UUID `gorm:"type:uuid;not null;index"`
	IssuedAt             time.Time `gorm:"not null"`
	NumberOfShares       int64     `gorm:"type:bigint;not null"`
	NumberOfShareholders int       `gorm:"not null"`
	TotalAmountInCents   int64     `gorm:"type:bigint;not null"`
	Status               string    `gorm:"type:varchar(32);not null"`
	ReturnOfCapital      bool      `gorm:"not null;default:false"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (DividendRound) TableName() string {
	return "dividend_rounds"
}

// Dividend is one investor's payout within a round. Net amount and
// withholding are filled in when the payout is processed.
type Dividend struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID             uuid.UUID `gorm:"type:uuid;not null;index"`
	DividendRoundID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyInvestorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalAmountInCents    int64     `gorm:"type:bigint;not null"`
	NetAmountInCents      *int64    `gorm:"type:bigint"`
	QualifiedAmountCents  int64     `gorm:"type:bigint;not null;default:0"`
	WithholdingPercentage *int
	WithheldTaxCents      *int64 `gorm:"type:bigint"`
	NumberOfShares        int64  `gorm:"type:bigint;not null"`
	Status                string `gorm:"type:varchar(32);not null"`
	PaidAt                *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (Dividend) TableName() string {
	return "dividends"
}

func usdToCents(v decimal.Decimal) int64 {
	return v.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
