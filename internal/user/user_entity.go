package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const countryCodeIndia = "IN"

type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID     string         `gorm:"column:external_id;type:varchar(32);not null;uniqueIndex"`
	Email          string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	LegalName      string         `gorm:"column:legal_name;type:varchar(255)"`
	PreferredName  *string        `gorm:"column:preferred_name;type:varchar(255)"`
	BusinessName   *string        `gorm:"column:business_name;type:varchar(255)"`
	BusinessEntity bool           `gorm:"column:business_entity;not null;default:false"`
	CountryCode    string         `gorm:"column:country_code;type:varchar(2)"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// BillingEntityName is the name shares and payouts are issued to: the
// business name for business entities, the legal name otherwise. Indian
// business entities are still issued under the legal name.
func (u User) BillingEntityName() string {
	if u.BusinessEntity && !strings.EqualFold(u.CountryCode, countryCodeIndia) &&
		u.BusinessName != nil && strings.TrimSpace(*u.BusinessName) != "" {
		return *u.BusinessName
	}
	return u.LegalName
}
