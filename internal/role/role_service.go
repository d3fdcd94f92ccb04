package role

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-flexile/internal/events"
	"go-flexile/internal/messaging/kafka"
	roleerrors "go-flexile/internal/role/errors"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/contextutil"
	"go-flexile/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	AddRole(ctx context.Context, companyID, userExternalID string, r Role) (RoleResult, error)
	RemoveRole(ctx context.Context, companyID, userExternalID string, r Role, actingUserID string) (RoleResult, error)
	ListRoles(ctx context.Context, companyID string) ([]MemberResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) findUser(ctx context.Context, externalID string) (*user.User, error) {
	u, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, roleerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *service) AddRole(ctx context.Context, companyID, userExternalID string, r Role) (RoleResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if r != Admin && r != Lawyer {
		return RoleResult{}, roleerrors.ErrInvalidRole
	}

	u, err := s.findUser(ctx, userExternalID)
	if err != nil {
		return RoleResult{}, err
	}
	userID := u.ID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("add role begin tx failed", zap.Error(err))
		return RoleResult{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.HasMembership(ctx, r, companyID, userID)
	if err != nil {
		return RoleResult{}, apperror.Internal(err)
	}
	if exists {
		return RoleResult{}, alreadyErr(r)
	}

	if err := qtx.CreateMembership(ctx, r, companyID, userID); err != nil {
		log.Warn("add role persist failed", zap.String("role", r.String()), zap.Error(err))
		return RoleResult{}, mapCreateError(err, r)
	}

	if err := s.enqueue(ctx, tx, events.RoleGranted, companyID, userID, r, ""); err != nil {
		return RoleResult{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("add role commit failed", zap.Error(err))
		return RoleResult{}, apperror.Internal(err)
	}

	log.Info("role granted",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.String("role", r.String()),
	)
	return RoleResult{Success: true}, nil
}

// RemoveRole revokes r from the user. For administrators the sole
// administrator cannot be removed, and nobody can remove their own admin
// role. Counting and deletion run under the company row lock.
func (s *service) RemoveRole(ctx context.Context, companyID, userExternalID string, r Role, actingUserID string) (RoleResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if r != Admin && r != Lawyer {
		return RoleResult{}, roleerrors.ErrInvalidRole
	}

	u, err := s.findUser(ctx, userExternalID)
	if err != nil {
		return RoleResult{}, err
	}
	userID := u.ID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("remove role begin tx failed", zap.Error(err))
		return RoleResult{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockCompany(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResult{}, apperror.ErrNotFound
		}
		return RoleResult{}, apperror.Internal(err)
	}

	exists, err := qtx.HasMembership(ctx, r, companyID, userID)
	if err != nil {
		return RoleResult{}, apperror.Internal(err)
	}
	if !exists {
		return RoleResult{}, notMemberErr(r)
	}

	if r == Admin {
		count, err := qtx.CountAdministrators(ctx, companyID)
		if err != nil {
			return RoleResult{}, apperror.Internal(err)
		}
		if count <= 1 {
			return RoleResult{}, roleerrors.ErrLastAdministrator
		}
		if userID == actingUserID {
			return RoleResult{}, roleerrors.ErrSelfRemoval
		}
	}

	if err := qtx.DeleteMembership(ctx, r, companyID, userID); err != nil {
		log.Error("remove role persist failed", zap.String("role", r.String()), zap.Error(err))
		return RoleResult{}, apperror.Internal(err)
	}

	if err := s.enqueue(ctx, tx, events.RoleRevoked, companyID, userID, r, actingUserID); err != nil {
		return RoleResult{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("remove role commit failed", zap.Error(err))
		return RoleResult{}, apperror.Internal(err)
	}

	log.Info("role revoked",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
		zap.String("role", r.String()),
		zap.String("actor_id", actingUserID),
	)
	return RoleResult{Success: true}, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType, companyID, userID string, r Role, actorID string) error {
	if s.outbox == nil {
		return nil
	}
	event := events.CompanyRoleChangedEvent{
		EventType:  eventType,
		CompanyID:  companyID,
		UserID:     userID,
		Role:       r.String(),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx), "company", companyID, eventType, events.CompanyRoleChangedTopic, event,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("role outbox persist failed", zap.String("event_type", eventType), zap.Error(err))
		return apperror.Internal(err)
	}
	return nil
}

func (s *service) ListRoles(ctx context.Context, companyID string) ([]MemberResponse, error) {
	rows, err := s.repo.ListMembers(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	resp := make([]MemberResponse, 0, len(rows))
	for _, m := range rows {
		resp = append(resp, MemberResponse{
			UserID:     m.UserID.String(),
			ExternalID: m.ExternalID,
			Email:      m.Email,
			LegalName:  m.LegalName,
			Role:       m.Role.String(),
		})
	}
	return resp, nil
}
