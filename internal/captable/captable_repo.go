package captable

import (
	"context"
	"database/sql"

	"go-flexile/internal/company"
	"go-flexile/internal/shared/connection"
	"go-flexile/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=captable_repo.go -destination=mock/captable_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockCompany reads the company row with FOR UPDATE so concurrent cap
	// table creations for the same company serialize.
	LockCompany(ctx context.Context, companyID string) (*company.Company, error)
	GetCompany(ctx context.Context, companyID string) (*company.Company, error)
	HasCapTableData(ctx context.Context, companyID string) (bool, error)
	IsInvestor(ctx context.Context, companyID, userID string) (bool, error)

	CreateShareClass(ctx context.Context, shareClass *ShareClass) error
	CreateInvestor(ctx context.Context, investor *CompanyInvestor) error
	CreateHolding(ctx context.Context, holding *ShareHolding) error
	AddInvestorShares(ctx context.Context, investorID string, shares int64) error

	SumInvestorShares(ctx context.Context, companyID string) (int64, error)
	UpdateFullyDilutedShares(ctx context.Context, companyID string, shares int64) error

	ListInvestors(ctx context.Context, companyID string) ([]CompanyInvestor, error)
	ListHoldings(ctx context.Context, companyID string) ([]ShareHolding, error)
	ListShareClasses(ctx context.Context, companyID string) ([]ShareClass, error)
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

func (r *repository) LockCompany(ctx context.Context, companyID string) (*company.Company, error) {
	var c company.Company
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", companyID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCompany(ctx context.Context, companyID string) (*company.Company, error) {
	var c company.Company
	if err := r.db.WithContext(ctx).First(&c, "id = ?", companyID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// HasCapTableData reports whether the company already has share classes,
// option pools, investors or holdings.
func (r *repository) HasCapTableData(ctx context.Context, companyID string) (bool, error) {
	owned := func(model any) *gorm.DB {
		return r.db.Model(model).Select("1").Where("company_id = ?", companyID)
	}

	var exists bool
	err := r.db.WithContext(ctx).Raw(
		"SELECT EXISTS (?) OR EXISTS (?) OR EXISTS (?) OR EXISTS (?)",
		owned(&ShareClass{}), owned(&OptionPool{}), owned(&CompanyInvestor{}), owned(&ShareHolding{}),
	).Scan(&exists).Error
	return exists, err
}

func (r *repository) IsInvestor(ctx context.Context, companyID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyInvestor{}).
		Scopes(tenant.Scope(companyID)).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateShareClass(ctx context.Context, shareClass *ShareClass) error {
	return r.db.WithContext(ctx).Create(shareClass).Error
}

func (r *repository) CreateInvestor(ctx context.Context, investor *CompanyInvestor) error {
	return r.db.WithContext(ctx).Create(investor).Error
}

func (r *repository) CreateHolding(ctx context.Context, holding *ShareHolding) error {
	return r.db.WithContext(ctx).Create(holding).Error
}

func (r *repository) AddInvestorShares(ctx context.Context, investorID string, shares int64) error {
	return r.db.WithContext(ctx).
		Model(&CompanyInvestor{}).
		Where("id = ?", investorID).
		Update("total_shares", gorm.Expr("total_shares + ?", shares)).Error
}

func (r *repository) SumInvestorShares(ctx context.Context, companyID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&CompanyInvestor{}).
		Scopes(tenant.Scope(companyID)).
		Select("COALESCE(SUM(total_shares), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) UpdateFullyDilutedShares(ctx context.Context, companyID string, shares int64) error {
	return r.db.WithContext(ctx).
		Model(&company.Company{}).
		Where("id = ?", companyID).
		Update("fully_diluted_shares", shares).Error
}

func (r *repository) ListInvestors(ctx context.Context, companyID string) ([]CompanyInvestor, error) {
	var investors []CompanyInvestor
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC, id ASC").
		Find(&investors).Error
	return investors, err
}

func (r *repository) ListHoldings(ctx context.Context, companyID string) ([]ShareHolding, error) {
	var holdings []ShareHolding
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC, id ASC").
		Find(&holdings).Error
	return holdings, err
}

func (r *repository) ListShareClasses(ctx context.Context, companyID string) ([]ShareClass, error) {
	var classes []ShareClass
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&classes).Error
	return classes, err
}
