package company

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	companyerrors "go-flexile/internal/company/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CompanyCacheKeyPrefix = "company:"
	companyCacheTTL       = 15 * time.Minute
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	cacheKey := CompanyCacheKeyPrefix + id
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp CompanyResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// dashboards poll this endpoint, collapse concurrent misses
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		comp, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(*comp)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, companyCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get company failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, err
	}

	return v.(CompanyResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		comp.Name = name
	}
	if req.EquityEnabled != nil {
		comp.EquityEnabled = *req.EquityEnabled
	}
	if req.SharePriceInUSD != nil {
		price, err := decimal.NewFromString(*req.SharePriceInUSD)
		if err != nil || !price.IsPositive() {
			return CompanyResponse{}, companyerrors.ErrInvalidSharePrice
		}
		comp.SharePriceInUSD = decimal.NewNullDecimal(price)
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, id)
	return mapToResponse(*comp), nil
}

func (s *service) invalidate(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CompanyCacheKeyPrefix+id).Err(); err != nil {
		s.logger.Warn("invalidate company cache failed", zap.String("company_id", id), zap.Error(err))
	}
}

func mapToResponse(c Company) CompanyResponse {
	resp := CompanyResponse{
		ID:                 c.ID.String(),
		ExternalID:         c.ExternalID,
		Name:               c.Name,
		Email:              c.Email,
		EquityEnabled:      c.EquityEnabled,
		FullyDilutedShares: c.FullyDilutedShares,
	}
	if c.SharePriceInUSD.Valid {
		v := c.SharePriceInUSD.Decimal.String()
		resp.SharePriceInUSD = &v
	}
	return resp
}
