package role

import (
	"time"

	roleerrors "go-flexile/internal/role/errors"

	"github.com/google/uuid"
)

// Role is the closed set of company roles that can be granted.
type Role int

const (
	Admin Role = iota + 1
	Lawyer
)

// ParseRole maps the wire names "admin" and "lawyer" to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return Admin, nil
	case "lawyer":
		return Lawyer, nil
	}
	return 0, roleerrors.ErrInvalidRole
}

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	case Lawyer:
		return "lawyer"
	}
	return "unknown"
}

type CompanyAdministrator struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_administrator"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_administrator"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CompanyAdministrator) TableName() string {
	return "company_administrators"
}

type CompanyLawyer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_lawyer"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_lawyer"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CompanyLawyer) TableName() string {
	return "company_lawyers"
}

// MemberRow is a role holder joined with its user.
type MemberRow struct {
	UserID     uuid.UUID
	ExternalID string
	Email      string
	LegalName  string
	Role       Role
}
