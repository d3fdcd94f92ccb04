package user

import (
	"context"
	"errors"

	"go-flexile/internal/shared/apperror"
	usererrors "go-flexile/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetByExternalID(ctx context.Context, externalID string) (UserResponse, error)
	GetByEmail(ctx context.Context, email string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, logger: zap.L().Named("user.service")}
}

func (s *service) GetByExternalID(ctx context.Context, externalID string) (UserResponse, error) {
	u, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (UserResponse, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("user lookup by email failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	return apperror.Internal(err)
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:                u.ID.String(),
		ExternalID:        u.ExternalID,
		Email:             u.Email,
		LegalName:         u.LegalName,
		BillingEntityName: u.BillingEntityName(),
		BusinessEntity:    u.BusinessEntity,
		CountryCode:       u.CountryCode,
	}
}
