package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Read models for the tables the financial reports aggregate. The
// exporter never writes to them.

type ConsolidatedInvoice struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID  string    `gorm:"type:varchar(32)"`
	CompanyID   uuid.UUID `gorm:"type:uuid"`
	InvoiceDate time.Time `gorm:"type:date"`
	TotalCents  int64     `gorm:"type:bigint"`
	Status      string    `gorm:"type:varchar(32)"`
	CreatedAt   time.Time
}

func (ConsolidatedInvoice) TableName() string { return "consolidated_invoices" }

type Invoice struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalID            string     `gorm:"type:varchar(32)"`
	CompanyID             uuid.UUID  `gorm:"type:uuid"`
	ConsolidatedInvoiceID *uuid.UUID `gorm:"type:uuid"`
	BillFrom              string
	InvoiceDate           time.Time `gorm:"type:date"`
	Status                string    `gorm:"type:varchar(32)"`
	TotalAmountInUSDCents int64     `gorm:"column:total_amount_in_usd_cents;type:bigint"`
	CreatedAt             time.Time
	DeletedAt             gorm.DeletedAt
}

func (Invoice) TableName() string { return "invoices" }

type Payment struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID         string    `gorm:"type:varchar(32)"`
	InvoiceID          uuid.UUID `gorm:"type:uuid"`
	Status             string    `gorm:"type:varchar(32)"`
	TransferFeeInCents *int64    `gorm:"type:bigint"`
	CreatedAt          time.Time
}

func (Payment) TableName() string { return "payments" }

type ConsolidatedPayment struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID            string    `gorm:"type:varchar(32)"`
	ConsolidatedInvoiceID uuid.UUID `gorm:"type:uuid"`
	Status                string    `gorm:"type:varchar(32)"`
	StripeFeeCents        *int64    `gorm:"type:bigint"`
	CreatedAt             time.Time
}

func (ConsolidatedPayment) TableName() string { return "consolidated_payments" }

type DividendPayment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DividendID uuid.UUID `gorm:"type:uuid"`
	Status     string    `gorm:"type:varchar(32)"`
	CreatedAt  time.Time
}

func (DividendPayment) TableName() string { return "dividend_payments" }

type EquityGrant struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ExternalID        string          `gorm:"type:varchar(32)"`
	CompanyInvestorID uuid.UUID       `gorm:"type:uuid"`
	OptionPoolID      uuid.UUID       `gorm:"type:uuid"`
	NumberOfShares    int64           `gorm:"type:bigint"`
	VestedShares      int64           `gorm:"type:bigint"`
	UnvestedShares    int64           `gorm:"type:bigint"`
	ExercisedShares   int64           `gorm:"type:bigint"`
	ForfeitedShares   int64           `gorm:"type:bigint"`
	SharePriceUSD     decimal.Decimal `gorm:"column:share_price_usd;type:numeric(30,10)"`
	ExercisePriceUSD  decimal.Decimal `gorm:"column:exercise_price_usd;type:numeric(30,10)"`
	ExpiresAt         time.Time
	CancelledAt       *time.Time
}

func (EquityGrant) TableName() string { return "equity_grants" }

type VestingEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquityGrantID uuid.UUID `gorm:"type:uuid"`
	VestingDate   time.Time `gorm:"type:date"`
	VestedShares  int64     `gorm:"type:bigint"`
	ProcessedAt   *time.Time
	CancelledAt   *time.Time
}

func (VestingEvent) TableName() string { return "vesting_events" }

// Query rows.

type InvoiceRecord struct {
	InvoiceID                     uuid.UUID
	InvoiceExternalID             string
	InvoiceDate                   *time.Time
	Status                        string
	TotalAmountInUSDCents         int64 `gorm:"column:total_amount_in_usd_cents"`
	ContractorName                string
	CompanyName                   string
	ConsolidatedInvoiceID         uuid.UUID
	ConsolidatedInvoiceExternalID string
	ConsolidatedInvoiceDate       *time.Time
	ConsolidatedTotalCents        int64
}

type PaymentRecord struct {
	InvoiceID          uuid.UUID
	ExternalID         string
	TransferFeeInCents *int64
}

type ConsolidatedPaymentRecord struct {
	ConsolidatedInvoiceID uuid.UUID
	ExternalID            string
	StripeFeeCents        *int64
}

type DividendRecord struct {
	DividendID         uuid.UUID
	DividendRoundID    uuid.UUID
	CompanyName        string
	InvestorName       string
	InvestorEmail      string
	NumberOfShares     int64
	TotalAmountInCents int64
	FirstPaidAt        *time.Time
}

type VestingRecord struct {
	VestingEventID   uuid.UUID
	VestingDate      *time.Time
	ProcessedAt      *time.Time
	VestedShares     int64
	GrantExternalID  string
	SharePriceUSD    decimal.Decimal `gorm:"column:share_price_usd"`
	ExercisePriceUSD decimal.Decimal `gorm:"column:exercise_price_usd"`
	ExpiresAt        time.Time
	GrantCancelledAt *time.Time
	CompanyName      string
	InvestorName     string
}
