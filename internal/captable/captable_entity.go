package captable

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultShareClassName is the class created for a company's first cap table.
const DefaultShareClassName = "Common"

// shareHoldingPrefixLength is how many letters of the company name start the
// holding name sequence ("GUM-1").
const shareHoldingPrefixLength = 3

type ShareClass struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ShareClass) TableName() string {
	return "share_classes"
}

type OptionPool struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ShareClassID     uuid.UUID `gorm:"type:uuid;not null"`
	Name             string    `gorm:"type:varchar(100);not null"`
	AuthorizedShares int64     `gorm:"type:bigint;not null"`
	IssuedShares     int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (OptionPool) TableName() string {
	return "option_pools"
}

type CompanyInvestor struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID              string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CompanyID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_investor"`
	UserID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_investor"`
	InvestmentAmountInCents int64     `gorm:"type:bigint;not null;default:0"`
	TotalShares             int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt               time.Time `gorm:"autoCreateTime"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime"`
}

func (CompanyInvestor) TableName() string {
	return "company_investors"
}

type ShareHolding struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyInvestorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShareClassID         uuid.UUID       `gorm:"type:uuid;not null"`
	Name                 string          `gorm:"type:varchar(64);not null"`
	NumberOfShares       int64           `gorm:"type:bigint;not null"`
	SharePriceUSD        decimal.Decimal `gorm:"column:share_price_usd;type:numeric(30,10);not null"`
	TotalAmountInCents   int64           `gorm:"type:bigint;not null"`
	ShareHolderName      string          `gorm:"type:varchar(255);not null"`
	IssuedAt             time.Time       `gorm:"not null"`
	OriginallyAcquiredAt time.Time       `gorm:"not null"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
}

func (ShareHolding) TableName() string {
	return "share_holdings"
}

// AmountInCents is shares x price in cents, rounded half up.
func AmountInCents(shares int64, price decimal.Decimal) int64 {
	return decimal.NewFromInt(shares).Mul(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
