package rbac

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetMemberRoles(ctx context.Context, companyID string) ([]MemberRoleRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type MemberRoleRow struct {
	UserID string
	Role   string
}

// GetMemberRoles lists every (user, role) pair of the company across the
// three membership tables.
func (r *repository) GetMemberRoles(ctx context.Context, companyID string) ([]MemberRoleRow, error) {
	var result []MemberRoleRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT user_id, ? AS role FROM company_administrators WHERE company_id = ?
		UNION ALL
		SELECT user_id, ? AS role FROM company_lawyers WHERE company_id = ?
		UNION ALL
		SELECT user_id, ? AS role FROM company_investors WHERE company_id = ?`,
		RoleAdministrator, companyID,
		RoleLawyer, companyID,
		RoleInvestor, companyID,
	).Scan(&result).Error

	return result, err
}
