package tenant

import (
	"errors"

	"gorm.io/gorm"
)

var ErrMissingCompany = errors.New("tenant scope requires a company id")

// Scope restricts a query to one company's rows. An empty company id fails
// the query instead of silently matching nothing.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			_ = db.AddError(ErrMissingCompany)
			return db
		}
		return db.Where("company_id = ?", companyID)
	}
}
