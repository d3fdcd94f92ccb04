package report_test

import (
	"context"
	"testing"
	"time"

	"go-flexile/internal/dividend"
	"go-flexile/internal/report"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

var (
	rangeFrom = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func TestRepository_ListInvoices(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := report.NewRepository(gdb)
	invoiceID := uuid.New()

	mock.ExpectQuery(`FROM invoices i JOIN consolidated_invoices ci ON ci\.id = i\.consolidated_invoice_id .*`+
		`WHERE i\.deleted_at IS NULL AND \(ci\.invoice_date >= \$1 AND ci\.invoice_date < \$2\)`).
		WithArgs(rangeFrom, rangeTo).
		WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "invoice_external_id", "total_amount_in_usd_cents"}).
			AddRow(invoiceID.String(), "inv1", 70000))

	rows, err := repo.ListInvoices(context.Background(), rangeFrom, rangeTo)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, invoiceID, rows[0].InvoiceID)
	assert.Equal(t, int64(70000), rows[0].TotalAmountInUSDCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListInvoicePayments(t *testing.T) {
	t.Run("no invoices skips the query", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := report.NewRepository(gdb)

		rows, err := repo.ListInvoicePayments(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("payments of the given invoices", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := report.NewRepository(gdb)
		a, b := uuid.New(), uuid.New()

		mock.ExpectQuery(`SELECT invoice_id, external_id, transfer_fee_in_cents FROM "payments" WHERE invoice_id IN \(\$1,\$2\)`).
			WithArgs(a, b).
			WillReturnRows(sqlmock.NewRows([]string{"invoice_id", "external_id", "transfer_fee_in_cents"}).
				AddRow(a.String(), "pay1", nil))

		rows, err := repo.ListInvoicePayments(context.Background(), []uuid.UUID{a, b})

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "pay1", rows[0].ExternalID)
		assert.Nil(t, rows[0].TransferFeeInCents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListConsolidatedPayments_NoInvoices(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := report.NewRepository(gdb)

	rows, err := repo.ListConsolidatedPayments(context.Background(), []uuid.UUID{})

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPaidDividends(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := report.NewRepository(gdb)
	dividendID := uuid.New()
	paidAt := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	// only dividends with a succeeded payment join, and only from paid rounds
	mock.ExpectQuery(`FROM dividends d `+
		`JOIN dividend_rounds dr ON dr\.id = d\.dividend_round_id `+
		`JOIN \(SELECT dividend_id, MIN\(created_at\) AS first_paid_at FROM "dividend_payments" WHERE status = \$1 GROUP BY "?dividend_id"?\) fp ON fp\.dividend_id = d\.id .*`+
		`WHERE dr\.status = \$2 AND \(fp\.first_paid_at >= \$3 AND fp\.first_paid_at < \$4\)`).
		WithArgs("succeeded", dividend.RoundStatusPaid, rangeFrom, rangeTo).
		WillReturnRows(sqlmock.NewRows([]string{"dividend_id", "total_amount_in_cents", "first_paid_at"}).
			AddRow(dividendID.String(), 25025, paidAt))

	rows, err := repo.ListPaidDividends(context.Background(), rangeFrom, rangeTo)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dividendID, rows[0].DividendID)
	require.NotNil(t, rows[0].FirstPaidAt)
	assert.True(t, paidAt.Equal(*rows[0].FirstPaidAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListVestingEvents(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := report.NewRepository(gdb)

	mock.ExpectQuery(`FROM vesting_events ve JOIN equity_grants eg ON eg\.id = ve\.equity_grant_id .*`+
		`WHERE \(ve\.processed_at IS NOT NULL AND ve\.cancelled_at IS NULL\) `+
		`AND \(ve\.processed_at >= \$1 AND ve\.processed_at < \$2\)`).
		WithArgs(rangeFrom, rangeTo).
		WillReturnRows(sqlmock.NewRows([]string{"vesting_event_id", "vested_shares", "grant_external_id"}))

	rows, err := repo.ListVestingEvents(context.Background(), rangeFrom, rangeTo)

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
