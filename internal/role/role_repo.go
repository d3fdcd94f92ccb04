package role

import (
	"context"
	"database/sql"
	"fmt"

	"go-flexile/internal/company"
	"go-flexile/internal/shared/connection"
	"go-flexile/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// LockCompany serializes role changes of one company.
	LockCompany(ctx context.Context, companyID string) error
	HasMembership(ctx context.Context, r Role, companyID, userID string) (bool, error)
	CreateMembership(ctx context.Context, r Role, companyID, userID string) error
	DeleteMembership(ctx context.Context, r Role, companyID, userID string) error
	CountAdministrators(ctx context.Context, companyID string) (int64, error)
	ListMembers(ctx context.Context, companyID string) ([]MemberRow, error)
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

func tableFor(r Role) (string, error) {
	switch r {
	case Admin:
		return CompanyAdministrator{}.TableName(), nil
	case Lawyer:
		return CompanyLawyer{}.TableName(), nil
	}
	return "", fmt.Errorf("unknown role %d", r)
}

func (r *repository) LockCompany(ctx context.Context, companyID string) error {
	var c company.Company
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&c, "id = ?", companyID).Error
}

func (r *repository) HasMembership(ctx context.Context, ro Role, companyID, userID string) (bool, error) {
	table, err := tableFor(ro)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Table(table).
		Scopes(tenant.Scope(companyID)).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateMembership(ctx context.Context, ro Role, companyID, userID string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	switch ro {
	case Admin:
		return db.Create(&CompanyAdministrator{ID: uuid.New(), CompanyID: cid, UserID: uid}).Error
	case Lawyer:
		return db.Create(&CompanyLawyer{ID: uuid.New(), CompanyID: cid, UserID: uid}).Error
	}
	return fmt.Errorf("unknown role %d", ro)
}

func (r *repository) DeleteMembership(ctx context.Context, ro Role, companyID, userID string) error {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID)).Where("user_id = ?", userID)
	switch ro {
	case Admin:
		return db.Delete(&CompanyAdministrator{}).Error
	case Lawyer:
		return db.Delete(&CompanyLawyer{}).Error
	}
	return fmt.Errorf("unknown role %d", ro)
}

func (r *repository) CountAdministrators(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyAdministrator{}).
		Scopes(tenant.Scope(companyID)).
		Count(&count).Error
	return count, err
}

func (r *repository) ListMembers(ctx context.Context, companyID string) ([]MemberRow, error) {
	var members []MemberRow
	for _, ro := range []Role{Admin, Lawyer} {
		table, _ := tableFor(ro)

		var rows []struct {
			UserID     uuid.UUID
			ExternalID string
			Email      string
			LegalName  string
		}
		err := r.db.WithContext(ctx).
			Table(table+" m").
			Select("u.id AS user_id, u.external_id, u.email, u.legal_name").
			Joins("JOIN users u ON u.id = m.user_id").
			Where("m.company_id = ?", companyID).
			Order("m.created_at ASC").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			members = append(members, MemberRow{
				UserID:     row.UserID,
				ExternalID: row.ExternalID,
				Email:      row.Email,
				LegalName:  row.LegalName,
				Role:       ro,
			})
		}
	}
	return members, nil
}
