package company_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-flexile/internal/company"
	companyerrors "go-flexile/internal/company/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCompanyRepository struct {
	getByIDFn func(ctx context.Context, id string) (*company.Company, error)
	updateFn  func(ctx context.Context, c *company.Company) error
	getCalls  int
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id string) (*company.Company, error) {
	f.getCalls++
	return f.getByIDFn(ctx, id)
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func TestCompanyService_GetByID_CacheHit(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()
	rdb, redisMock := redismock.NewClientMock()

	cached, _ := json.Marshal(company.CompanyResponse{ID: id, Name: "Gummy Bears Inc"})
	redisMock.ExpectGet(company.CompanyCacheKeyPrefix + id).SetVal(string(cached))

	repo := &fakeCompanyRepository{}
	svc := company.NewService(repo, rdb)

	resp, err := svc.GetByID(ctx, id)

	assert.NoError(t, err)
	assert.Equal(t, "Gummy Bears Inc", resp.Name)
	assert.Equal(t, 0, repo.getCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCompanyService_GetByID_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeCompanyRepository{
		getByIDFn: func(ctx context.Context, got string) (*company.Company, error) {
			return &company.Company{
				ID:                 id,
				ExternalID:         "cmp_1",
				Name:               "Gummy Bears Inc",
				EquityEnabled:      true,
				FullyDilutedShares: 150000,
				SharePriceInUSD:    decimal.NewNullDecimal(decimal.RequireFromString("1.25")),
			}, nil
		},
	}
	svc := company.NewService(repo, rdb)

	price := "1.25"
	expected := company.CompanyResponse{
		ID:                 id.String(),
		ExternalID:         "cmp_1",
		Name:               "Gummy Bears Inc",
		EquityEnabled:      true,
		FullyDilutedShares: 150000,
		SharePriceInUSD:    &price,
	}
	payload, _ := json.Marshal(expected)

	redisMock.ExpectGet(company.CompanyCacheKeyPrefix + id.String()).RedisNil()
	redisMock.ExpectSet(company.CompanyCacheKeyPrefix+id.String(), payload, 15*time.Minute).SetVal("OK")

	resp, err := svc.GetByID(ctx, id.String())

	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCompanyService_GetByID_Errors(t *testing.T) {
	ctx := context.Background()
	svc := company.NewService(&fakeCompanyRepository{
		getByIDFn: func(ctx context.Context, id string) (*company.Company, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}, nil)

	_, err := svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)

	_, err = svc.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	enabled := true

	t.Run("enables equity and sets share price", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		var saved *company.Company
		repo := &fakeCompanyRepository{
			getByIDFn: func(ctx context.Context, got string) (*company.Company, error) {
				return &company.Company{ID: id, Name: "Old"}, nil
			},
			updateFn: func(ctx context.Context, c *company.Company) error {
				saved = c
				return nil
			},
		}
		redisMock.ExpectDel(company.CompanyCacheKeyPrefix + id.String()).SetVal(1)

		price := "2.50"
		resp, err := company.NewService(repo, rdb).Update(ctx, id.String(), company.UpdateCompanyRequest{
			EquityEnabled:   &enabled,
			SharePriceInUSD: &price,
		})

		assert.NoError(t, err)
		assert.True(t, resp.EquityEnabled)
		assert.Equal(t, "Old", saved.Name)
		assert.True(t, saved.EffectiveSharePrice().Equal(decimal.RequireFromString("2.5")))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("rejects non positive share price", func(t *testing.T) {
		repo := &fakeCompanyRepository{
			getByIDFn: func(ctx context.Context, got string) (*company.Company, error) {
				return &company.Company{ID: id}, nil
			},
		}
		price := "-1"

		_, err := company.NewService(repo, nil).Update(ctx, id.String(), company.UpdateCompanyRequest{SharePriceInUSD: &price})

		assert.ErrorIs(t, err, companyerrors.ErrInvalidSharePrice)
	})
}

func TestCompany_EffectiveSharePriceDefaultsToOneCent(t *testing.T) {
	assert.Equal(t, "0.01", company.Company{}.EffectiveSharePrice().String())
}
