package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go-flexile/internal/fee"
	reporterrors "go-flexile/internal/report/errors"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/contextutil"
	"go-flexile/internal/valuation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PeriodLayout = "2006-01"

	invoiceStatusReceived = "received"
	invoiceStatusOpen     = "open"

	paymentIDSeparator = ";"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	// Generate builds the four CSV reports for [start, end], both days
	// inclusive, keyed by file name.
	Generate(ctx context.Context, start, end time.Time) (map[string][]byte, error)
	// GenerateAndStore generates the reports and keeps them under the
	// start month's period.
	GenerateAndStore(ctx context.Context, start, end time.Time) (string, error)
	GetStored(ctx context.Context, period string) (map[string][]byte, error)
}

type service struct {
	repo   Repository
	store  *Store
	engine *valuation.Engine
	now    func() time.Time
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, rdb, time.Now, logger...)
}

// NewServiceWithClock fixes "today" for option valuation and date sort
// fallbacks.
func NewServiceWithClock(repo Repository, rdb *redis.Client, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		repo:   repo,
		store:  NewStore(rdb),
		engine: valuation.NewEngine(valuation.WithClock(now)),
		now:    now,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// FileNames returns the four report file names for a report starting at start.
func FileNames(start time.Time) (invoices, dividends, grouped, stockOptions string) {
	monthYear := start.Format("January 2006")
	return "invoices-" + monthYear + ".csv",
		"dividends-" + monthYear + ".csv",
		"grouped-" + monthYear + ".csv",
		"stock_options-" + monthYear + ".csv"
}

func (s *service) Generate(ctx context.Context, start, end time.Time) (map[string][]byte, error) {
	if start.After(end) {
		return nil, reporterrors.ErrInvalidDateRange
	}

	from := dayStart(start)
	to := dayStart(end).AddDate(0, 0, 1)
	key := from.Format(dateLayout) + ":" + to.Format(dateLayout)

	// the monthly job and an operator can ask for the same month at once;
	// one caller going away must not fail the others
	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.generate(context.WithoutCancel(ctx), start, from, to)
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("generate financial report failed",
			zap.String("start", from.Format(dateLayout)),
			zap.String("end", end.Format(dateLayout)),
			zap.Error(err),
		)
		return nil, err
	}
	return cloneFiles(v.(map[string][]byte)), nil
}

// cloneFiles gives each caller of a shared generation its own copy.
func cloneFiles(files map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(files))
	for name, body := range files {
		out[name] = bytes.Clone(body)
	}
	return out
}

func (s *service) generate(ctx context.Context, start, from, to time.Time) (map[string][]byte, error) {
	invoiceRows, err := s.invoiceLines(ctx, from, to)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	dividendRows, err := s.dividendLines(ctx, from, to)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	vestingRows, err := s.repo.ListVestingEvents(ctx, from, to)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	invoicesName, dividendsName, groupedName, stockOptionsName := FileNames(start)

	files := make(map[string][]byte, 4)
	for name, t := range map[string]*table{
		invoicesName:     invoicesTable(invoiceRows),
		dividendsName:    dividendsTable(dividendRows),
		groupedName:      groupedTable(invoiceRows, dividendRows, s.now()),
		stockOptionsName: s.stockOptionsTable(vestingRows),
	} {
		body, err := t.render()
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("render %s: %w", name, err))
		}
		files[name] = body
	}

	s.logger.Info("financial report generated",
		zap.String("from", from.Format(dateLayout)),
		zap.Int("invoices", len(invoiceRows)),
		zap.Int("dividends", len(dividendRows)),
		zap.Int("vesting_events", len(vestingRows)),
	)
	return files, nil
}

type invoiceLine struct {
	InvoiceRecord
	flexileFeeCents  int64
	transferFeeCents int64
	stripeFeeCents   int64
	paymentIDs       []string
}

func (s *service) invoiceLines(ctx context.Context, from, to time.Time) ([]invoiceLine, error) {
	records, err := s.repo.ListInvoices(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	invoiceIDs := make([]uuid.UUID, 0, len(records))
	seenConsolidated := make(map[uuid.UUID]bool)
	var consolidatedIDs []uuid.UUID
	for _, r := range records {
		invoiceIDs = append(invoiceIDs, r.InvoiceID)
		if !seenConsolidated[r.ConsolidatedInvoiceID] {
			seenConsolidated[r.ConsolidatedInvoiceID] = true
			consolidatedIDs = append(consolidatedIDs, r.ConsolidatedInvoiceID)
		}
	}

	payments, err := s.repo.ListInvoicePayments(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}
	consolidatedPayments, err := s.repo.ListConsolidatedPayments(ctx, consolidatedIDs)
	if err != nil {
		return nil, err
	}

	paymentsByInvoice := make(map[uuid.UUID][]PaymentRecord)
	for _, p := range payments {
		paymentsByInvoice[p.InvoiceID] = append(paymentsByInvoice[p.InvoiceID], p)
	}
	stripeByConsolidated := make(map[uuid.UUID]int64)
	for _, p := range consolidatedPayments {
		if p.StripeFeeCents != nil {
			stripeByConsolidated[p.ConsolidatedInvoiceID] += *p.StripeFeeCents
		}
	}

	lines := make([]invoiceLine, 0, len(records))
	for _, r := range records {
		line := invoiceLine{
			InvoiceRecord:   r,
			flexileFeeCents: fee.CalculateInvoiceFee(r.TotalAmountInUSDCents),
			stripeFeeCents:  stripeByConsolidated[r.ConsolidatedInvoiceID],
		}
		for _, p := range paymentsByInvoice[r.InvoiceID] {
			if p.TransferFeeInCents != nil {
				line.transferFeeCents += *p.TransferFeeInCents
			}
			line.paymentIDs = append(line.paymentIDs, p.ExternalID)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type dividendLine struct {
	DividendRecord
	feeCents int64
}

func (d dividendLine) netCents() int64 {
	return d.TotalAmountInCents - d.feeCents
}

func (s *service) dividendLines(ctx context.Context, from, to time.Time) ([]dividendLine, error) {
	records, err := s.repo.ListPaidDividends(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lines := make([]dividendLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, dividendLine{
			DividendRecord: r,
			feeCents:       fee.CalculateDividendFee(r.TotalAmountInCents),
		})
	}
	return lines, nil
}

func displayInvoiceStatus(status string) string {
	if status == invoiceStatusReceived {
		return invoiceStatusOpen
	}
	return status
}

func invoicesTable(lines []invoiceLine) *table {
	t := newTable(
		column{header: "Invoice date"},
		column{header: "Consolidated invoice ID"},
		column{header: "Client name"},
		column{header: "Invoice ID"},
		column{header: "Contractor name"},
		column{header: "Status"},
		column{header: "Consolidated invoice total", summable: true},
		column{header: "Invoice total", summable: true},
		column{header: "Flexile fee", summable: true},
		column{header: "Transfer fee", summable: true},
		column{header: "Stripe fee", summable: true},
		column{header: "Payment IDs"},
	)
	for _, l := range lines {
		t.append(
			formatDate(l.ConsolidatedInvoiceDate),
			l.ConsolidatedInvoiceExternalID,
			l.CompanyName,
			l.InvoiceExternalID,
			l.ContractorName,
			displayInvoiceStatus(l.Status),
			formatCents(l.ConsolidatedTotalCents),
			formatCents(l.TotalAmountInUSDCents),
			formatCents(l.flexileFeeCents),
			formatCents(l.transferFeeCents),
			formatCents(l.stripeFeeCents),
			strings.Join(l.paymentIDs, paymentIDSeparator),
		)
	}
	return t
}

func dividendsTable(lines []dividendLine) *table {
	t := newTable(
		column{header: "Date paid"},
		column{header: "Client name"},
		column{header: "Dividend round ID"},
		column{header: "Dividend ID"},
		column{header: "Investor name"},
		column{header: "Investor email"},
		column{header: "Number of shares", summable: true},
		column{header: "Total amount", summable: true},
		column{header: "Flexile fee", summable: true},
		column{header: "Net amount", summable: true},
	)
	for _, l := range lines {
		t.append(
			formatDate(l.FirstPaidAt),
			l.CompanyName,
			l.DividendRoundID.String(),
			l.DividendID.String(),
			l.InvestorName,
			l.InvestorEmail,
			fmt.Sprint(l.NumberOfShares),
			formatCents(l.TotalAmountInCents),
			formatCents(l.feeCents),
			formatCents(l.netCents()),
		)
	}
	return t
}

func groupedTable(invoices []invoiceLine, dividends []dividendLine, now time.Time) *table {
	t := newTable(
		column{header: "Type"},
		column{header: "Date"},
		column{header: "Client name"},
		column{header: "ID"},
		column{header: "Recipient name"},
		column{header: "Amount", summable: true},
		column{header: "Flexile fee", summable: true},
	)
	for _, l := range invoices {
		t.append(
			"Invoice",
			formatDate(l.ConsolidatedInvoiceDate),
			l.CompanyName,
			l.InvoiceExternalID,
			l.ContractorName,
			formatCents(l.TotalAmountInUSDCents),
			formatCents(l.flexileFeeCents),
		)
	}
	for _, l := range dividends {
		t.append(
			"Dividend",
			formatDate(l.FirstPaidAt),
			l.CompanyName,
			l.DividendID.String(),
			l.InvestorName,
			formatCents(l.TotalAmountInCents),
			formatCents(l.feeCents),
		)
	}
	t.sortByDate(1, now)
	return t
}

func (s *service) stockOptionsTable(records []VestingRecord) *table {
	t := newTable(
		column{header: "Vesting date"},
		column{header: "Processed at"},
		column{header: "Client name"},
		column{header: "Grant ID"},
		column{header: "Investor name"},
		column{header: "Vested shares", summable: true},
		column{header: "Share price"},
		column{header: "Exercise price"},
		column{header: "Expires at"},
		column{header: "Option value"},
		column{header: "Total expense", summable: true},
		column{header: "Grant status"},
	)
	for _, r := range records {
		value := s.optionValue(r)
		status := "Active"
		if r.GrantCancelledAt != nil {
			status = "Cancelled"
		}
		expiresAt := r.ExpiresAt
		t.append(
			formatDate(r.VestingDate),
			formatDate(r.ProcessedAt),
			r.CompanyName,
			r.GrantExternalID,
			r.InvestorName,
			fmt.Sprint(r.VestedShares),
			r.SharePriceUSD.String(),
			r.ExercisePriceUSD.String(),
			formatDate(&expiresAt),
			value.StringFixed(4),
			value.Mul(decimal.NewFromInt(r.VestedShares)).StringFixed(2),
			status,
		)
	}
	t.sortByDate(0, s.now())
	return t
}

// optionValue prices one vested option; grants without a positive price
// are worth nothing.
func (s *service) optionValue(r VestingRecord) decimal.Decimal {
	if !r.SharePriceUSD.IsPositive() || !r.ExercisePriceUSD.IsPositive() {
		return decimal.Zero
	}
	return s.engine.OptionValue(r.SharePriceUSD, r.ExercisePriceUSD, r.ExpiresAt)
}

func (s *service) GenerateAndStore(ctx context.Context, start, end time.Time) (string, error) {
	files, err := s.Generate(ctx, start, end)
	if err != nil {
		return "", err
	}
	period := start.Format(PeriodLayout)
	if err := s.store.Save(ctx, period, files); err != nil {
		s.logger.Error("store financial report failed", zap.String("period", period), zap.Error(err))
		return "", apperror.Internal(err)
	}
	return period, nil
}

func (s *service) GetStored(ctx context.Context, period string) (map[string][]byte, error) {
	if _, err := time.Parse(PeriodLayout, period); err != nil {
		return nil, reporterrors.ErrInvalidPeriod
	}
	files, err := s.store.Load(ctx, period)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(files) == 0 {
		return nil, reporterrors.ErrReportNotFound
	}
	return files, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
