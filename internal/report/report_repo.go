package report

import (
	"context"
	"time"

	"go-flexile/internal/dividend"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const paymentStatusSucceeded = "succeeded"

func aliased(t schema.Tabler, alias string) string {
	return t.TableName() + " " + alias
}

// Repository reads the platform-wide financial data for a half-open time
// range [from, to).
//
//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	ListInvoices(ctx context.Context, from, to time.Time) ([]InvoiceRecord, error)
	ListInvoicePayments(ctx context.Context, invoiceIDs []uuid.UUID) ([]PaymentRecord, error)
	ListConsolidatedPayments(ctx context.Context, consolidatedInvoiceIDs []uuid.UUID) ([]ConsolidatedPaymentRecord, error)
	ListPaidDividends(ctx context.Context, from, to time.Time) ([]DividendRecord, error)
	ListVestingEvents(ctx context.Context, from, to time.Time) ([]VestingRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListInvoices returns alive invoices whose consolidated invoice was issued
// in range.
func (r *repository) ListInvoices(ctx context.Context, from, to time.Time) ([]InvoiceRecord, error) {
	var rows []InvoiceRecord
	err := r.db.WithContext(ctx).
		Table(aliased(Invoice{}, "i")).
		Select(`i.id AS invoice_id, i.external_id AS invoice_external_id, i.invoice_date, i.status,
			i.total_amount_in_usd_cents, i.bill_from AS contractor_name, c.name AS company_name,
			ci.id AS consolidated_invoice_id, ci.external_id AS consolidated_invoice_external_id,
			ci.invoice_date AS consolidated_invoice_date, ci.total_cents AS consolidated_total_cents`).
		Joins("JOIN "+aliased(ConsolidatedInvoice{}, "ci")+" ON ci.id = i.consolidated_invoice_id").
		Joins("JOIN companies c ON c.id = i.company_id").
		Where("i.deleted_at IS NULL").
		Where("ci.invoice_date >= ? AND ci.invoice_date < ?", from, to).
		Order("ci.invoice_date ASC, i.invoice_date ASC, i.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListInvoicePayments(ctx context.Context, invoiceIDs []uuid.UUID) ([]PaymentRecord, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil
	}
	var rows []PaymentRecord
	err := r.db.WithContext(ctx).
		Model(&Payment{}).
		Select("invoice_id, external_id, transfer_fee_in_cents").
		Where("invoice_id IN ?", invoiceIDs).
		Order("created_at ASC, id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListConsolidatedPayments(ctx context.Context, consolidatedInvoiceIDs []uuid.UUID) ([]ConsolidatedPaymentRecord, error) {
	if len(consolidatedInvoiceIDs) == 0 {
		return nil, nil
	}
	var rows []ConsolidatedPaymentRecord
	err := r.db.WithContext(ctx).
		Model(&ConsolidatedPayment{}).
		Select("consolidated_invoice_id, external_id, stripe_fee_cents").
		Where("consolidated_invoice_id IN ?", consolidatedInvoiceIDs).
		Order("created_at ASC, id ASC").
		Scan(&rows).Error
	return rows, err
}

// ListPaidDividends returns dividends of paid rounds whose first successful
// payment falls in range. Dividends without a successful payment never appear.
func (r *repository) ListPaidDividends(ctx context.Context, from, to time.Time) ([]DividendRecord, error) {
	firstPayment := r.db.
		Model(&DividendPayment{}).
		Select("dividend_id, MIN(created_at) AS first_paid_at").
		Where("status = ?", paymentStatusSucceeded).
		Group("dividend_id")

	var rows []DividendRecord
	err := r.db.WithContext(ctx).
		Table(aliased(dividend.Dividend{}, "d")).
		Select(`d.id AS dividend_id, d.dividend_round_id, c.name AS company_name,
			u.legal_name AS investor_name, u.email AS investor_email,
			d.number_of_shares, d.total_amount_in_cents, fp.first_paid_at`).
		Joins("JOIN "+aliased(dividend.DividendRound{}, "dr")+" ON dr.id = d.dividend_round_id").
		Joins("JOIN (?) fp ON fp.dividend_id = d.id", firstPayment).
		Joins("JOIN companies c ON c.id = d.company_id").
		Joins("JOIN company_investors inv ON inv.id = d.company_investor_id").
		Joins("JOIN users u ON u.id = inv.user_id").
		Where("dr.status = ?", dividend.RoundStatusPaid).
		Where("fp.first_paid_at >= ? AND fp.first_paid_at < ?", from, to).
		Order("fp.first_paid_at ASC, d.id ASC").
		Scan(&rows).Error
	return rows, err
}

// ListVestingEvents returns processed, not cancelled vesting events
// processed in range.
func (r *repository) ListVestingEvents(ctx context.Context, from, to time.Time) ([]VestingRecord, error) {
	var rows []VestingRecord
	err := r.db.WithContext(ctx).
		Table(aliased(VestingEvent{}, "ve")).
		Select(`ve.id AS vesting_event_id, ve.vesting_date, ve.processed_at, ve.vested_shares,
			eg.external_id AS grant_external_id, eg.share_price_usd, eg.exercise_price_usd,
			eg.expires_at, eg.cancelled_at AS grant_cancelled_at,
			c.name AS company_name, u.legal_name AS investor_name`).
		Joins("JOIN "+aliased(EquityGrant{}, "eg")+" ON eg.id = ve.equity_grant_id").
		Joins("JOIN company_investors inv ON inv.id = eg.company_investor_id").
		Joins("JOIN companies c ON c.id = inv.company_id").
		Joins("JOIN users u ON u.id = inv.user_id").
		Where("ve.processed_at IS NOT NULL AND ve.cancelled_at IS NULL").
		Where("ve.processed_at >= ? AND ve.processed_at < ?", from, to).
		Scan(&rows).Error
	return rows, err
}
