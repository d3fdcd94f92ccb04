package captable_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-flexile/internal/captable"
	captableerrors "go-flexile/internal/captable/errors"
	"go-flexile/internal/company"
	kafkaMock "go-flexile/internal/messaging/kafka/mock"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/sequence"
	"go-flexile/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// memRepo keeps one company's cap table in memory.
type memRepo struct {
	company   company.Company
	classes   []captable.ShareClass
	investors []*captable.CompanyInvestor
	holdings  []captable.ShareHolding

	failCreateHolding error
}

func (m *memRepo) WithTx(tx *sql.Tx) captable.Repository { return m }

func (m *memRepo) LockCompany(ctx context.Context, companyID string) (*company.Company, error) {
	return m.GetCompany(ctx, companyID)
}

func (m *memRepo) GetCompany(ctx context.Context, companyID string) (*company.Company, error) {
	if m.company.ID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	c := m.company
	return &c, nil
}

func (m *memRepo) HasCapTableData(ctx context.Context, companyID string) (bool, error) {
	return len(m.classes) > 0 || len(m.investors) > 0 || len(m.holdings) > 0, nil
}

func (m *memRepo) IsInvestor(ctx context.Context, companyID, userID string) (bool, error) {
	for _, inv := range m.investors {
		if inv.UserID.String() == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CreateShareClass(ctx context.Context, sc *captable.ShareClass) error {
	m.classes = append(m.classes, *sc)
	return nil
}

func (m *memRepo) CreateInvestor(ctx context.Context, inv *captable.CompanyInvestor) error {
	cp := *inv
	m.investors = append(m.investors, &cp)
	return nil
}

func (m *memRepo) CreateHolding(ctx context.Context, h *captable.ShareHolding) error {
	if m.failCreateHolding != nil {
		return m.failCreateHolding
	}
	m.holdings = append(m.holdings, *h)
	return nil
}

func (m *memRepo) AddInvestorShares(ctx context.Context, investorID string, shares int64) error {
	for _, inv := range m.investors {
		if inv.ID.String() == investorID {
			inv.TotalShares += shares
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memRepo) SumInvestorShares(ctx context.Context, companyID string) (int64, error) {
	var total int64
	for _, inv := range m.investors {
		total += inv.TotalShares
	}
	return total, nil
}

func (m *memRepo) UpdateFullyDilutedShares(ctx context.Context, companyID string, shares int64) error {
	m.company.FullyDilutedShares = shares
	return nil
}

func (m *memRepo) ListInvestors(ctx context.Context, companyID string) ([]captable.CompanyInvestor, error) {
	out := make([]captable.CompanyInvestor, 0, len(m.investors))
	for _, inv := range m.investors {
		out = append(out, *inv)
	}
	return out, nil
}

func (m *memRepo) ListHoldings(ctx context.Context, companyID string) ([]captable.ShareHolding, error) {
	return m.holdings, nil
}

func (m *memRepo) ListShareClasses(ctx context.Context, companyID string) ([]captable.ShareClass, error) {
	return m.classes, nil
}

// memSequence reads the last holding name from the same store.
type memSequence struct{ repo *memRepo }

func (s *memSequence) WithTx(tx *sql.Tx) sequence.Repository { return s }

func (s *memSequence) LastShareHoldingName(ctx context.Context, companyID string) (*string, error) {
	if len(s.repo.holdings) == 0 {
		return nil, nil
	}
	name := s.repo.holdings[len(s.repo.holdings)-1].Name
	return &name, nil
}

type fakeUsers struct {
	byExternalID map[string]*user.User
}

func (f *fakeUsers) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	if u, ok := f.byExternalID[externalID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *memRepo
	outbox  *kafkaMock.MockOutboxRepository
	service captable.Service
}

func strPtr(s string) *string { return &s }

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &memRepo{company: company.Company{
		ID:            uuid.New(),
		Name:          "Gummy Bears Inc",
		EquityEnabled: true,
	}}
	users := &fakeUsers{byExternalID: map[string]*user.User{
		"user1": {ID: uuid.New(), ExternalID: "user1", LegalName: "Ada Lovelace"},
		"user2": {ID: uuid.New(), ExternalID: "user2", LegalName: "Grace Hopper"},
		"user3": {
			ID: uuid.New(), ExternalID: "user3", LegalName: "Priya Raman",
			BusinessEntity: true, BusinessName: strPtr("Raman Holdings Pvt Ltd"), CountryCode: "IN",
		},
		"user4": {
			ID: uuid.New(), ExternalID: "user4", LegalName: "Jan Jansen",
			BusinessEntity: true, BusinessName: strPtr("Jansen BV"), CountryCode: "NL",
		},
	}}
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := captable.NewService(db, repo, users, &memSequence{repo: repo}, outbox)

	return &serviceDeps{db: db, sqlMock: sqlMock, repo: repo, outbox: outbox, service: svc}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func (d *serviceDeps) expectOutbox() {
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
}

func TestCapTableService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - fully diluted shares equal investor totals", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)
		deps.expectOutbox()

		res, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{
				{UserExternalID: "user1", Shares: 100000},
				{UserExternalID: "user2", Shares: 50000},
			},
		})

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Empty(t, res.Errors)
		assert.NotNil(t, res.Errors)
		assert.Equal(t, int64(150000), res.FullyDilutedShares)
		assert.Equal(t, int64(150000), deps.repo.company.FullyDilutedShares)

		var sum int64
		for _, inv := range deps.repo.investors {
			sum += inv.TotalShares
		}
		assert.Equal(t, deps.repo.company.FullyDilutedShares, sum)

		assert.Len(t, deps.repo.classes, 1)
		assert.Equal(t, captable.DefaultShareClassName, deps.repo.classes[0].Name)

		assert.Len(t, deps.repo.holdings, 2)
		assert.Equal(t, "GUM-1", deps.repo.holdings[0].Name)
		assert.Equal(t, "GUM-2", deps.repo.holdings[1].Name)
		assert.Equal(t, "Ada Lovelace", deps.repo.holdings[0].ShareHolderName)

		// default $0.01 share price
		assert.Equal(t, int64(100000), deps.repo.investors[0].InvestmentAmountInCents)
		assert.Equal(t, int64(50000), deps.repo.investors[1].InvestmentAmountInCents)
		assert.True(t, deps.repo.holdings[0].SharePriceUSD.Equal(decimal.RequireFromString("0.01")))

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second create fails and changes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		companyID := deps.repo.company.ID.String()
		req := captable.CreateCapTableRequest{Investors: []captable.InvestorInput{
			{UserExternalID: "user1", Shares: 100000},
			{UserExternalID: "user2", Shares: 50000},
		}}

		expectTx(t, deps.sqlMock, true)
		deps.expectOutbox()
		_, err := deps.service.Create(ctx, companyID, req)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.Create(ctx, companyID, req)

		assert.ErrorIs(t, err, captableerrors.ErrCapTableExists)
		assert.Equal(t, "Company already has cap table data", err.Error())
		assert.Len(t, deps.repo.investors, 2)
		assert.Len(t, deps.repo.holdings, 2)
		assert.Equal(t, int64(150000), deps.repo.company.FullyDilutedShares)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("equity disabled", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.company.EquityEnabled = false
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{{UserExternalID: "user1", Shares: 10}},
		})

		assert.ErrorIs(t, err, captableerrors.ErrEquityNotEnabled)
		assert.Equal(t, "Company must have equity enabled", err.Error())
		assert.Empty(t, deps.repo.classes)
	})

	t.Run("row errors are collected together", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{
				{UserExternalID: "missing", Shares: 10},
				{UserExternalID: "user1", Shares: 10},
				{UserExternalID: "user1", Shares: 20},
				{UserExternalID: "ghost", Shares: 30},
			},
		})

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{
			"Investor 1: User not found",
			"Investor 3: User is already an investor in this company",
			"Investor 4: User not found",
		}, appErr.Details)
		assert.Empty(t, deps.repo.investors)
		assert.Empty(t, deps.repo.classes)
	})

	t.Run("existing investor row counts as cap table data", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		// an investor row without classes or holdings still counts as cap table data
		deps.repo.investors = append(deps.repo.investors, &captable.CompanyInvestor{ID: uuid.New(), UserID: uuid.New()})
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{{UserExternalID: "user1", Shares: 10}},
		})
		assert.ErrorIs(t, err, captableerrors.ErrCapTableExists)
	})

	t.Run("total shares exceed fully diluted shares", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.company.FullyDilutedShares = 1000
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{
				{UserExternalID: "user1", Shares: 600},
				{UserExternalID: "user2", Shares: 600},
			},
		})

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{"Total shares (1200) cannot exceed fully diluted shares (1000)"}, appErr.Details)
		assert.Equal(t, int64(1000), deps.repo.company.FullyDilutedShares)
	})

	t.Run("shareholder name follows business entity rules", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.company.SharePriceInUSD = decimal.NewNullDecimal(decimal.RequireFromString("1.2345"))
		expectTx(t, deps.sqlMock, true)
		deps.expectOutbox()

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{
				{UserExternalID: "user3", Shares: 3},
				{UserExternalID: "user4", Shares: 7},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Priya Raman", deps.repo.holdings[0].ShareHolderName)
		assert.Equal(t, "Jansen BV", deps.repo.holdings[1].ShareHolderName)
		// 3 x 1.2345 = 3.7035 -> 370.35 cents -> 370
		assert.Equal(t, int64(370), deps.repo.investors[0].InvestmentAmountInCents)
		// 7 x 1.2345 = 8.6415 -> 864.15 cents -> 864
		assert.Equal(t, int64(864), deps.repo.investors[1].InvestmentAmountInCents)
	})

	t.Run("persistence failure rolls back and surfaces the message", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.failCreateHolding = errors.New("connection reset by peer")
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{
			Investors: []captable.InvestorInput{{UserExternalID: "user1", Shares: 10}},
		})

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInternalError, appErr.Code)
		assert.Contains(t, appErr.Message, "connection reset by peer")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no investors", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{})
		assert.ErrorIs(t, err, captableerrors.ErrNoInvestors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no investors on equity disabled company reports equity first", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.company.EquityEnabled = false
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{})
		assert.ErrorIs(t, err, captableerrors.ErrEquityNotEnabled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no investors on existing cap table reports existing data", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.repo.investors = append(deps.repo.investors, &captable.CompanyInvestor{ID: uuid.New(), UserID: uuid.New()})
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, deps.repo.company.ID.String(), captable.CreateCapTableRequest{})
		assert.ErrorIs(t, err, captableerrors.ErrCapTableExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestCapTableService_Get(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	ctx := context.Background()
	companyID := deps.repo.company.ID.String()

	expectTx(t, deps.sqlMock, true)
	deps.expectOutbox()
	_, err := deps.service.Create(ctx, companyID, captable.CreateCapTableRequest{
		Investors: []captable.InvestorInput{{UserExternalID: "user1", Shares: 42}},
	})
	assert.NoError(t, err)

	resp, err := deps.service.Get(ctx, companyID)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.FullyDilutedShares)
	assert.Len(t, resp.Investors, 1)
	assert.Len(t, resp.Investors[0].Holdings, 1)
	assert.Equal(t, "GUM-1", resp.Investors[0].Holdings[0].Name)
	assert.Equal(t, captable.DefaultShareClassName, resp.Investors[0].Holdings[0].ShareClass)

	_, err = deps.service.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, captableerrors.ErrCompanyNotFound)
}
