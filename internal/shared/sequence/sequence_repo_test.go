package sequence_test

import (
	"context"
	"testing"

	"go-flexile/internal/shared/sequence"
	"go-flexile/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

const lastNameQuery = `SELECT "?name"? FROM "share_holdings" WHERE company_id = \$1 ORDER BY created_at DESC, LENGTH\(name\) DESC, name DESC LIMIT \$2`

func TestRepository_LastShareHoldingName(t *testing.T) {
	t.Run("latest name", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := sequence.NewRepository(gdb)

		mock.ExpectQuery(lastNameQuery).
			WithArgs("company-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("GUM-10"))

		name, err := repo.LastShareHoldingName(context.Background(), "company-1")

		require.NoError(t, err)
		require.NotNil(t, name)
		assert.Equal(t, "GUM-10", *name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no holdings yet", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := sequence.NewRepository(gdb)

		mock.ExpectQuery(lastNameQuery).
			WithArgs("company-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}))

		name, err := repo.LastShareHoldingName(context.Background(), "company-1")

		assert.NoError(t, err)
		assert.Nil(t, name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing company is rejected before querying", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := sequence.NewRepository(gdb)

		name, err := repo.LastShareHoldingName(context.Background(), "")

		assert.ErrorIs(t, err, tenant.ErrMissingCompany)
		assert.Nil(t, name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
