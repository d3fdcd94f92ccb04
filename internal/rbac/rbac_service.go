package rbac

import (
	"context"
	"sync"

	"go-flexile/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
	RolesFor(userID, companyID string) ([]string, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

// loadCompanyPolicyUnlocked rebuilds the enforcer for a single company.
// Memberships change through role management, so policies are reloaded on
// every check rather than cached.
func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	memberRoles, err := s.repo.GetMemberRoles(context.Background(), companyID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.String("company_id", companyID),
		zap.Int("member_roles", len(memberRoles)),
	)

	for _, mr := range memberRoles {
		if _, err := s.enforcer.AddGroupingPolicy(mr.UserID, mr.Role, companyID); err != nil {
			return err
		}
	}

	for _, role := range []string{RoleAdministrator, RoleLawyer, RoleInvestor} {
		for _, p := range PermissionsFor(role) {
			if _, err := s.enforcer.AddPolicy(role, companyID, p.Resource, p.Action); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

func (s *service) RolesFor(userID, companyID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(companyID); err != nil {
		return nil, err
	}
	return s.enforcer.GetRolesForUserInDomain(userID, companyID), nil
}
