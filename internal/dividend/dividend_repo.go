package dividend

import (
	"context"
	"database/sql"
	"time"

	"go-flexile/internal/shared/connection"
	"go-flexile/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=dividend_repo.go -destination=mock/dividend_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockComputation reads the computation with FOR UPDATE so two
	// finalizations of the same computation serialize.
	LockComputation(ctx context.Context, companyID, computationID string) (*DividendComputation, error)
	GetComputation(ctx context.Context, companyID, computationID string) (*DividendComputation, error)
	ListOutputs(ctx context.Context, computationID string) ([]DividendComputationOutput, error)

	CreateRound(ctx context.Context, round *DividendRound) error
	CreateDividends(ctx context.Context, dividends []Dividend) error
	MarkFinalized(ctx context.Context, computationID, roundID string, at time.Time) error

	GetRound(ctx context.Context, companyID, roundID string) (*DividendRound, error)
	ListDividends(ctx context.Context, roundID string) ([]Dividend, error)
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

func (r *repository) LockComputation(ctx context.Context, companyID, computationID string) (*DividendComputation, error) {
	var c DividendComputation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", computationID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetComputation(ctx context.Context, companyID, computationID string) (*DividendComputation, error) {
	var c DividendComputation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&c, "id = ?", computationID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListOutputs(ctx context.Context, computationID string) ([]DividendComputationOutput, error) {
	var outputs []DividendComputationOutput
	err := r.db.WithContext(ctx).
		Where("dividend_computation_id = ?", computationID).
		Order("created_at ASC, id ASC").
		Find(&outputs).Error
	return outputs, err
}

func (r *repository) CreateRound(ctx context.Context, round *DividendRound) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *repository) CreateDividends(ctx context.Context, dividends []Dividend) error {
	if len(dividends) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(dividends, 500).Error
}

// MarkFinalized only touches a computation that is still a draft; a zero
// row count means someone else finalized it first.
func (r *repository) MarkFinalized(ctx context.Context, computationID, roundID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&DividendComputation{}).
		Where("id = ? AND finalized_at IS NULL", computationID).
		Updates(map[string]any{
			"finalized_at":      at,
			"dividend_round_id": roundID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetRound(ctx context.Context, companyID, roundID string) (*DividendRound, error) {
	var round DividendRound
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&round, "id = ?", roundID).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *repository) ListDividends(ctx context.Context, roundID string) ([]Dividend, error) {
	var dividends []Dividend
	err := r.db.WithContext(ctx).
		Where("dividend_round_id = ?", roundID).
		Order("created_at ASC, id ASC").
		Find(&dividends).Error
	return dividends, err
}
