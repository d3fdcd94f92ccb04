package sequence

import (
	"context"
	"database/sql"
	"errors"

	"go-flexile/internal/shared/connection"
	"go-flexile/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// LastShareHoldingName returns the name of the most recently issued
	// share holding of the company, or nil when none exists. Holdings
	// created in the same instant are ranked by name, longer names first,
	// so "GUM-10" wins over "GUM-9".
	LastShareHoldingName(ctx context.Context, companyID string) (*string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) LastShareHoldingName(ctx context.Context, companyID string) (*string, error) {
	var row struct{ Name string }

	err := r.db.WithContext(ctx).
		Table("share_holdings").
		Select("name").
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC, LENGTH(name) DESC, name DESC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &row.Name, nil
}
