package captable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	captableerrors "go-flexile/internal/captable/errors"
	"go-flexile/internal/events"
	"go-flexile/internal/messaging/kafka"
	"go-flexile/internal/shared/apperror"
	"go-flexile/internal/shared/contextutil"
	"go-flexile/internal/shared/externalid"
	"go-flexile/internal/shared/sequence"
	"go-flexile/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=captable_service.go -destination=mock/captable_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateCapTableRequest) (CreateCapTableResult, error)
	Get(ctx context.Context, companyID string) (CapTableResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	sequence sequence.Repository
	outbox   kafka.OutboxRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	seq sequence.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("captable.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("captable.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		sequence: seq,
		outbox:   outboxRepo,
		now:      time.Now,
		logger:   l,
	}
}

type resolvedInvestor struct {
	user   *user.User
	shares int64
}

// Create builds the initial cap table of a company: one "Common" share
// class, an investor and a share holding per input row, and the refreshed
// fully diluted share count. Every guard is evaluated inside the
// transaction holding the company row lock.
func (s *service) Create(ctx context.Context, companyID string, req CreateCapTableRequest) (CreateCapTableResult, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create cap table requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("investors", len(req.Investors)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create cap table begin tx failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := qtx.LockCompany(ctx, companyID)
	if err != nil {
		return CreateCapTableResult{}, mapRepositoryError(err)
	}

	if !comp.EquityEnabled {
		return CreateCapTableResult{}, captableerrors.ErrEquityNotEnabled
	}

	hasData, err := qtx.HasCapTableData(ctx, companyID)
	if err != nil {
		log.Error("create cap table check existing data failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}
	if hasData {
		return CreateCapTableResult{}, captableerrors.ErrCapTableExists
	}

	if len(req.Investors) == 0 {
		return CreateCapTableResult{}, captableerrors.ErrNoInvestors
	}

	investors, rowErrors, err := s.resolveInvestors(ctx, qtx, companyID, req.Investors)
	if err != nil {
		log.Error("create cap table resolve investors failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}
	if len(rowErrors) > 0 {
		return CreateCapTableResult{}, captableerrors.ErrInvalidInvestors.WithDetails(rowErrors)
	}

	var totalShares int64
	for _, inv := range investors {
		totalShares += inv.shares
	}
	if comp.FullyDilutedShares > 0 && totalShares > comp.FullyDilutedShares {
		msg := fmt.Sprintf("Total shares (%d) cannot exceed fully diluted shares (%d)", totalShares, comp.FullyDilutedShares)
		return CreateCapTableResult{}, captableerrors.ErrInvalidInvestors.WithDetails([]string{msg})
	}

	shareClass := &ShareClass{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Name:      DefaultShareClassName,
	}
	if err := qtx.CreateShareClass(ctx, shareClass); err != nil {
		log.Error("create cap table share class failed", zap.Error(err))
		return CreateCapTableResult{}, mapRepositoryError(err)
	}

	// names are issued under the company lock, so the last name cannot move
	lastName, err := s.sequence.WithTx(tx).LastShareHoldingName(ctx, companyID)
	if err != nil {
		log.Error("create cap table read last holding name failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}

	price := comp.EffectiveSharePrice()
	issuedAt := s.now().UTC()
	created := make([]InvestorResponse, 0, len(investors))

	for _, inv := range investors {
		investor := &CompanyInvestor{
			ID:                      uuid.New(),
			ExternalID:              externalid.New(),
			CompanyID:               comp.ID,
			UserID:                  inv.user.ID,
			InvestmentAmountInCents: AmountInCents(inv.shares, price),
		}
		if err := qtx.CreateInvestor(ctx, investor); err != nil {
			log.Error("create cap table investor failed", zap.String("user_id", inv.user.ID.String()), zap.Error(err))
			return CreateCapTableResult{}, mapRepositoryError(err)
		}

		name := sequence.NextName(comp.Name, lastName, shareHoldingPrefixLength)
		lastName = &name

		holding := &ShareHolding{
			ID:                   uuid.New(),
			CompanyID:            comp.ID,
			CompanyInvestorID:    investor.ID,
			ShareClassID:         shareClass.ID,
			Name:                 name,
			NumberOfShares:       inv.shares,
			SharePriceUSD:        price,
			TotalAmountInCents:   AmountInCents(inv.shares, price),
			ShareHolderName:      inv.user.BillingEntityName(),
			IssuedAt:             issuedAt,
			OriginallyAcquiredAt: issuedAt,
		}
		if err := qtx.CreateHolding(ctx, holding); err != nil {
			log.Error("create cap table holding failed", zap.String("name", name), zap.Error(err))
			return CreateCapTableResult{}, mapRepositoryError(err)
		}
		if err := qtx.AddInvestorShares(ctx, investor.ID.String(), inv.shares); err != nil {
			log.Error("create cap table investor shares failed", zap.Error(err))
			return CreateCapTableResult{}, apperror.Internal(err)
		}
		investor.TotalShares += inv.shares

		created = append(created, mapInvestor(*investor, []ShareHolding{*holding}, shareClass.Name))
	}

	// roll up from the rows written above, inside the same transaction
	fullyDiluted, err := qtx.SumInvestorShares(ctx, companyID)
	if err != nil {
		log.Error("create cap table sum shares failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}
	if err := qtx.UpdateFullyDilutedShares(ctx, companyID, fullyDiluted); err != nil {
		log.Error("create cap table update fully diluted shares failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}

	if s.outbox != nil {
		event := events.CapTableCreatedEvent{
			EventType:          "cap_table_created",
			CompanyID:          companyID,
			InvestorCount:      len(created),
			FullyDilutedShares: fullyDiluted,
			OccurredAt:         issuedAt,
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "company", companyID, event.EventType, events.CapTableCreatedTopic, event)
		if err != nil {
			return CreateCapTableResult{}, apperror.Internal(err)
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			log.Error("create cap table outbox persist failed", zap.Error(err))
			return CreateCapTableResult{}, apperror.Internal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create cap table commit failed", zap.Error(err))
		return CreateCapTableResult{}, apperror.Internal(err)
	}

	log.Info("create cap table success",
		zap.String("company_id", companyID),
		zap.Int("investors", len(created)),
		zap.Int64("fully_diluted_shares", fullyDiluted),
	)

	return CreateCapTableResult{
		Success:            true,
		Errors:             []string{},
		FullyDilutedShares: fullyDiluted,
		Investors:          created,
	}, nil
}

// resolveInvestors validates every row and collects all row errors instead
// of stopping at the first one. Rows are numbered from 1.
func (s *service) resolveInvestors(
	ctx context.Context,
	qtx Repository,
	companyID string,
	inputs []InvestorInput,
) ([]resolvedInvestor, []string, error) {
	var (
		resolved  []resolvedInvestor
		rowErrors []string
	)
	seen := make(map[uuid.UUID]bool, len(inputs))

	for i, in := range inputs {
		row := i + 1

		u, err := s.users.FindByExternalID(ctx, in.UserExternalID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rowErrors = append(rowErrors, fmt.Sprintf("Investor %d: User not found", row))
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		if seen[u.ID] {
			rowErrors = append(rowErrors, fmt.Sprintf("Investor %d: User is already an investor in this company", row))
			continue
		}
		isInvestor, err := qtx.IsInvestor(ctx, companyID, u.ID.String())
		if err != nil {
			return nil, nil, err
		}
		if isInvestor {
			rowErrors = append(rowErrors, fmt.Sprintf("Investor %d: User is already an investor in this company", row))
			continue
		}

		if in.Shares <= 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("Investor %d: Shares must be greater than 0", row))
			continue
		}

		seen[u.ID] = true
		resolved = append(resolved, resolvedInvestor{user: u, shares: in.Shares})
	}

	return resolved, rowErrors, nil
}

func (s *service) Get(ctx context.Context, companyID string) (CapTableResponse, error) {
	comp, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return CapTableResponse{}, mapRepositoryError(err)
	}

	investors, err := s.repo.ListInvestors(ctx, companyID)
	if err != nil {
		return CapTableResponse{}, apperror.Internal(err)
	}
	holdings, err := s.repo.ListHoldings(ctx, companyID)
	if err != nil {
		return CapTableResponse{}, apperror.Internal(err)
	}
	classes, err := s.repo.ListShareClasses(ctx, companyID)
	if err != nil {
		return CapTableResponse{}, apperror.Internal(err)
	}

	classNames := make(map[uuid.UUID]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = c.Name
	}
	byInvestor := make(map[uuid.UUID][]ShareHolding)
	for _, h := range holdings {
		byInvestor[h.CompanyInvestorID] = append(byInvestor[h.CompanyInvestorID], h)
	}

	resp := CapTableResponse{
		CompanyID:          comp.ID.String(),
		FullyDilutedShares: comp.FullyDilutedShares,
		Investors:          make([]InvestorResponse, 0, len(investors)),
	}
	for _, inv := range investors {
		ir := mapInvestor(inv, nil, "")
		for _, h := range byInvestor[inv.ID] {
			ir.Holdings = append(ir.Holdings, mapHolding(h, classNames[h.ShareClassID]))
		}
		resp.Investors = append(resp.Investors, ir)
	}
	return resp, nil
}

func mapInvestor(inv CompanyInvestor, holdings []ShareHolding, className string) InvestorResponse {
	resp := InvestorResponse{
		ID:                      inv.ID.String(),
		ExternalID:              inv.ExternalID,
		UserID:                  inv.UserID.String(),
		InvestmentAmountInCents: inv.InvestmentAmountInCents,
		TotalShares:             inv.TotalShares,
		Holdings:                []HoldingResponse{},
	}
	for _, h := range holdings {
		resp.Holdings = append(resp.Holdings, mapHolding(h, className))
	}
	return resp
}

func mapHolding(h ShareHolding, className string) HoldingResponse {
	return HoldingResponse{
		ID:                 h.ID.String(),
		Name:               h.Name,
		ShareClass:         className,
		NumberOfShares:     h.NumberOfShares,
		SharePriceUSD:      h.SharePriceUSD.String(),
		TotalAmountInCents: h.TotalAmountInCents,
		ShareHolderName:    h.ShareHolderName,
		IssuedAt:           h.IssuedAt.Format(time.RFC3339),
	}
}
