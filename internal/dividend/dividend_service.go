package dividend

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dividenderrors "go-flexile/internal/dividend/errors"
	"go-flexile/internal/events"
	"go-flexile/internal/messaging/kafka"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/contextutil"
	"go-flexile/internal/shared/externalid"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=dividend_service.go -destination=mock/dividend_service_mock.go -package=mock
type Service interface {
	Finalize(ctx context.Context, companyID, computationID string) (FinalizeResult, error)
	GetComputation(ctx context.Context, companyID, computationID string) (ComputationResponse, error)
	GetRound(ctx context.Context, companyID, roundID string) (DividendRoundResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dividend.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dividend.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    time.Now,
		logger: l,
	}
}

type investorTotals struct {
	investorID uuid.UUID
	shares     int64
	total      decimal.Decimal
	qualified  decimal.Decimal
}

// Finalize turns a draft computation into a dividend round with one
// dividend per investor. The round, the dividends and the finalized flag
// are written in one transaction; any failure leaves the computation a
// draft.
func (s *service) Finalize(ctx context.Context, companyID, computationID string) (FinalizeResult, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("finalize dividend begin tx failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	computation, err := qtx.LockComputation(ctx, companyID, computationID)
	if err != nil {
		return FinalizeResult{}, mapRepositoryError(err, dividenderrors.ErrComputationNotFound)
	}
	if computation.IsFinalized() {
		log.Warn("finalize dividend rejected, already finalized",
			zap.String("dividend_computation_id", computationID),
		)
		return FinalizeResult{}, dividenderrors.ErrAlreadyFinalized
	}

	outputs, err := qtx.ListOutputs(ctx, computationID)
	if err != nil {
		log.Error("finalize dividend list outputs failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}
	if len(outputs) == 0 {
		return FinalizeResult{}, dividenderrors.ErrNoOutputs
	}

	perInvestor := aggregateOutputs(outputs)

	var totalShares int64
	for _, t := range perInvestor {
		totalShares += t.shares
	}

	round := &DividendRound{
		ID:                   uuid.New(),
		ExternalID:           externalid.New(),
		CompanyID:            computation.CompanyID,
		IssuedAt:             computation.DividendsIssuanceDate,
		NumberOfShares:       totalShares,
		NumberOfShareholders: len(perInvestor),
		TotalAmountInCents:   usdToCents(computation.TotalAmountInUSD),
		Status:               RoundStatusIssued,
		ReturnOfCapital:      computation.ReturnOfCapital,
	}
	if err := qtx.CreateRound(ctx, round); err != nil {
		log.Error("finalize dividend create round failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}

	dividends := make([]Dividend, 0, len(perInvestor))
	for _, t := range perInvestor {
		dividends = append(dividends, Dividend{
			ID:                   uuid.New(),
			CompanyID:            computation.CompanyID,
			DividendRoundID:      round.ID,
			CompanyInvestorID:    t.investorID,
			TotalAmountInCents:   usdToCents(t.total),
			QualifiedAmountCents: usdToCents(t.qualified),
			NumberOfShares:       t.shares,
			Status:               DividendStatusIssued,
		})
	}
	if err := qtx.CreateDividends(ctx, dividends); err != nil {
		log.Error("finalize dividend create dividends failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}

	if err := qtx.MarkFinalized(ctx, computationID, round.ID.String(), s.now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FinalizeResult{}, dividenderrors.ErrAlreadyFinalized
		}
		log.Error("finalize dividend mark finalized failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}

	if s.outbox != nil {
		event := events.DividendRoundFinalizedEvent{
			EventType:             "dividend_round_finalized",
			CompanyID:             companyID,
			DividendComputationID: computationID,
			DividendRoundID:       round.ID.String(),
			TotalAmountInCents:    round.TotalAmountInCents,
			NumberOfDividends:     len(dividends),
			OccurredAt:            s.now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "dividend_round", round.ID.String(), event.EventType, events.DividendRoundFinalizedTopic, event)
		if err != nil {
			return FinalizeResult{}, apperror.Internal(err)
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			log.Error("finalize dividend outbox persist failed", zap.Error(err))
			return FinalizeResult{}, apperror.Internal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("finalize dividend commit failed", zap.Error(err))
		return FinalizeResult{}, apperror.Internal(err)
	}

	log.Info("finalize dividend success",
		zap.String("dividend_computation_id", computationID),
		zap.String("dividend_round_id", round.ID.String()),
		zap.Int("dividends", len(dividends)),
	)

	resp := mapRound(*round, dividends)
	return FinalizeResult{Success: true, DividendRound: &resp}, nil
}

// aggregateOutputs sums outputs per investor, keeping first-seen order.
func aggregateOutputs(outputs []DividendComputationOutput) []investorTotals {
	index := make(map[uuid.UUID]int, len(outputs))
	var totals []investorTotals

	for _, o := range outputs {
		i, ok := index[o.CompanyInvestorID]
		if !ok {
			i = len(totals)
			index[o.CompanyInvestorID] = i
			totals = append(totals, investorTotals{investorID: o.CompanyInvestorID})
		}
		totals[i].shares += o.NumberOfShares
		totals[i].total = totals[i].total.Add(o.TotalAmountInUSD)
		totals[i].qualified = totals[i].qualified.Add(o.QualifiedDividendAmountUSD)
	}
	return totals
}

func (s *service) GetComputation(ctx context.Context, companyID, computationID string) (ComputationResponse, error) {
	computation, err := s.repo.GetComputation(ctx, companyID, computationID)
	if err != nil {
		return ComputationResponse{}, mapRepositoryError(err, dividenderrors.ErrComputationNotFound)
	}
	outputs, err := s.repo.ListOutputs(ctx, computationID)
	if err != nil {
		return ComputationResponse{}, apperror.Internal(err)
	}
	return mapComputation(*computation, outputs), nil
}

func (s *service) GetRound(ctx context.Context, companyID, roundID string) (DividendRoundResponse, error) {
	round, err := s.repo.GetRound(ctx, companyID, roundID)
	if err != nil {
		return DividendRoundResponse{}, mapRepositoryError(err, dividenderrors.ErrRoundNotFound)
	}
	dividends, err := s.repo.ListDividends(ctx, roundID)
	if err != nil {
		return DividendRoundResponse{}, apperror.Internal(err)
	}
	return mapRound(*round, dividends), nil
}

func mapRound(r DividendRound, dividends []Dividend) DividendRoundResponse {
	resp := DividendRoundResponse{
		ID:                   r.ID.String(),
		ExternalID:           r.ExternalID,
		IssuedAt:             r.IssuedAt.Format("2006-01-02"),
		NumberOfShares:       r.NumberOfShares,
		NumberOfShareholders: r.NumberOfShareholders,
		TotalAmountInCents:   r.TotalAmountInCents,
		Status:               r.Status,
		ReturnOfCapital:      r.ReturnOfCapital,
	}
	for _, d := range dividends {
		resp.Dividends = append(resp.Dividends, DividendResponse{
			ID:                    d.ID.String(),
			CompanyInvestorID:     d.CompanyInvestorID.String(),
			TotalAmountInCents:    d.TotalAmountInCents,
			NetAmountInCents:      d.NetAmountInCents,
			WithholdingPercentage: d.WithholdingPercentage,
			WithheldTaxCents:      d.WithheldTaxCents,
			NumberOfShares:        d.NumberOfShares,
			Status:                d.Status,
		})
	}
	return resp
}

func mapComputation(c DividendComputation, outputs []DividendComputationOutput) ComputationResponse {
	resp := ComputationResponse{
		ID:                    c.ID.String(),
		ExternalID:            c.ExternalID,
		TotalAmountInUSD:      c.TotalAmountInUSD.StringFixed(2),
		DividendsIssuanceDate: c.DividendsIssuanceDate.Format("2006-01-02"),
		ReturnOfCapital:       c.ReturnOfCapital,
		State:                 "draft",
		Outputs:               make([]OutputResponse, 0, len(outputs)),
	}
	if c.FinalizedAt != nil {
		resp.State = "finalized"
		at := c.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &at
	}
	if c.DividendRoundID != nil {
		id := c.DividendRoundID.String()
		resp.DividendRoundID = &id
	}
	for _, o := range outputs {
		resp.Outputs = append(resp.Outputs, OutputResponse{
			CompanyInvestorID:   o.CompanyInvestorID.String(),
			ShareClass:          o.ShareClass,
			NumberOfShares:      o.NumberOfShares,
			DividendAmountInUSD: o.DividendAmountInUSD.StringFixed(2),
			TotalAmountInUSD:    o.TotalAmountInUSD.StringFixed(2),
		})
	}
	return resp
}
