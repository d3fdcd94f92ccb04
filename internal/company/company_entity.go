package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultSharePriceUSD is used when a company has not set a share price.
var DefaultSharePriceUSD = decimal.RequireFromString("0.01")

type Company struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name       string    `gorm:"type:varchar(150);not null"`
	Email      string    `gorm:"type:varchar(255);index"`

	EquityEnabled      bool                `gorm:"not null;default:false"`
	FullyDilutedShares int64               `gorm:"type:bigint;not null;default:0"`
	SharePriceInUSD    decimal.NullDecimal `gorm:"column:share_price_in_usd;type:numeric(30,10)"`
	InviteToken        *string             `gorm:"type:varchar(64);uniqueIndex"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

// EffectiveSharePrice returns the configured share price or the $0.01 default.
func (c Company) EffectiveSharePrice() decimal.Decimal {
	if c.SharePriceInUSD.Valid {
		return c.SharePriceInUSD.Decimal
	}
	return DefaultSharePriceUSD
}
