package service

import (
	"context"
	"errors"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/repository"
	"saunapos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClosingService interface {
	CloseDay(ctx context.Context, staffID uuid.UUID, req dto.CloseDayRequest) (*dto.ClosingResponse, error)
	GetClosing(ctx context.Context, businessDay string) (*dto.ClosingResponse, error)
	// BuildSummary recomputes the rollup for a business day from source
	// records and upserts it. Called by the rollup cron and by CloseDay.
	BuildSummary(ctx context.Context, businessDay string) (*model.DailySummary, error)
}

type closingService struct {
	repo        repository.ClosingRepository
	sessionRepo repository.SessionRepository
	feeRepo     repository.FeeRepository
	rentalRepo  repository.RentalRepository
	summaryRepo repository.SummaryRepository
	settings    SettingsService
	dispatcher  *worker.Dispatcher
	now         func() time.Time
}

func NewClosingService(
	repo repository.ClosingRepository,
	sessionRepo repository.SessionRepository,
	feeRepo repository.FeeRepository,
	rentalRepo repository.RentalRepository,
	summaryRepo repository.SummaryRepository,
	settings SettingsService,
	dispatcher *worker.Dispatcher,
) ClosingService {
	return &closingService{
		repo:        repo,
		sessionRepo: sessionRepo,
		feeRepo:     feeRepo,
		rentalRepo:  rentalRepo,
		summaryRepo: summaryRepo,
		settings:    settings,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

// NewClosingServiceWithClock pins "now" for tests.
func NewClosingServiceWithClock(
	repo repository.ClosingRepository,
	sessionRepo repository.SessionRepository,
	feeRepo repository.FeeRepository,
	rentalRepo repository.RentalRepository,
	summaryRepo repository.SummaryRepository,
	settings SettingsService,
	dispatcher *worker.Dispatcher,
	now func() time.Time,
) ClosingService {
	svc := NewClosingService(repo, sessionRepo, feeRepo, rentalRepo, summaryRepo, settings, dispatcher).(*closingService)
	svc.now = now
	return svc
}

// ── CloseDay ─────────────────────────────────────────────────────────────────
// Blind count: the staff member declares the drawer before seeing the
// expected totals; the deviation is computed only after the declaration is in.
// A critical deviation cannot be committed without notes.

func (s *closingService) CloseDay(ctx context.Context, staffID uuid.UUID, req dto.CloseDayRequest) (*dto.ClosingResponse, error) {
	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}

	businessDay := req.BusinessDay
	if businessDay == "" {
		businessDay = tariff.BusinessDay(s.now())
	}

	if existing, err := s.repo.FindByBusinessDay(ctx, businessDay); err == nil && existing != nil {
		return nil, errors.New("this business day is already closed")
	}

	// Open lockers carry their base fee into the day they eventually check
	// out on; a day with occupants can still close.
	expected, err := s.expectedTotals(ctx, businessDay)
	if err != nil {
		return nil, err
	}

	declared := dto.MethodTotals{
		Cash:     req.Declaration.Cash,
		Card:     req.Declaration.Card,
		Transfer: req.Declaration.Transfer,
	}
	declared.Total = declared.Cash + declared.Card + declared.Transfer

	deviation := declared.Total - expected.Total
	var deviationPct decimal.Decimal
	switch {
	case expected.Total != 0:
		deviationPct = decimal.NewFromInt(int64(deviation)).
			Div(decimal.NewFromInt(int64(expected.Total))).
			Mul(decimal.NewFromInt(100)).Round(2)
	case declared.Total != 0:
		// Any drawer content on a day with no settlements is fully
		// unexplained, so it always reconciles as critical.
		deviationPct = decimal.NewFromInt(100)
	}
	class := classifyDeviation(deviationPct)

	if class == "critical" && (req.Notes == nil || *req.Notes == "") {
		return nil, errors.New("critical deviation: manager notes are required")
	}

	closing := &model.DayClosing{
		BusinessDay:      businessDay,
		StaffID:          staffID,
		ExpectedCash:     expected.Cash,
		ExpectedCard:     expected.Card,
		ExpectedTransfer: expected.Transfer,
		DeclaredCash:     declared.Cash,
		DeclaredCard:     declared.Card,
		DeclaredTransfer: declared.Transfer,
		Deviation:        deviation,
		DeviationPct:     deviationPct,
		DeviationClass:   class,
		Notes:            req.Notes,
		ClosedAt:         s.now(),
	}
	if err := s.repo.Create(ctx, closing); err != nil {
		return nil, err
	}

	summary, err := s.BuildSummary(ctx, businessDay)
	if err != nil {
		return nil, err
	}
	summary.Closed = true
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return nil, err
	}

	// Async report (PDF + email) — best-effort, fire and forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueClosingReport(ctx, worker.ClosingReportPayload{BusinessDay: businessDay})
	}

	return s.closingToResponse(closing, summary), nil
}

func (s *closingService) GetClosing(ctx context.Context, businessDay string) (*dto.ClosingResponse, error) {
	closing, err := s.repo.FindByBusinessDay(ctx, businessDay)
	if err != nil {
		return nil, errors.New("no closing recorded for this business day")
	}
	summary, err := s.summaryRepo.FindByBusinessDay(ctx, businessDay)
	if err != nil {
		return nil, err
	}
	return s.closingToResponse(closing, summary), nil
}

// ── BuildSummary ─────────────────────────────────────────────────────────────
// Revenue attribution: base fees under the session's entry day, overstay fees
// under their own checkout-day stamp, rentals under their own stamp.

func (s *closingService) BuildSummary(ctx context.Context, businessDay string) (*model.DailySummary, error) {
	sessions, _, err := s.sessionRepo.List(ctx, dto.SessionFilter{
		BusinessDay: businessDay,
		Status:      "all",
		Page:        1,
		Limit:       10000,
	})
	if err != nil {
		return nil, err
	}
	fees, err := s.feeRepo.ListByBusinessDay(ctx, businessDay)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.ListByBusinessDay(ctx, businessDay)
	if err != nil {
		return nil, err
	}

	summary := &model.DailySummary{BusinessDay: businessDay}
	for i := range sessions {
		sess := &sessions[i]
		switch sess.Status {
		case model.SessionCheckedOut:
			summary.Sessions++
			summary.EntryTotal += sess.FinalPrice
			summary.CashTotal += sess.CashAmount
			summary.CardTotal += sess.CardAmount
			summary.TransferTotal += sess.TransferAmount
		case model.SessionCancelled:
			summary.Cancellations++
		case model.SessionInUse:
			summary.Sessions++
		}
	}
	for i := range fees {
		f := &fees[i]
		summary.AdditionalTotal += f.Amount
		summary.CashTotal += f.CashAmount
		summary.CardTotal += f.CardAmount
		summary.TransferTotal += f.TransferAmount
	}
	for i := range rentals {
		rt := &rentals[i]
		summary.RentalTotal += rt.Fee
		summary.CashTotal += rt.CashAmount
		summary.CardTotal += rt.CardAmount
		summary.TransferTotal += rt.TransferAmount
		if rt.DepositStatus == model.DepositReceived {
			summary.DepositHeld += rt.DepositAmount
		}
	}
	return summary, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *closingService) expectedTotals(ctx context.Context, businessDay string) (dto.MethodTotals, error) {
	summary, err := s.BuildSummary(ctx, businessDay)
	if err != nil {
		return dto.MethodTotals{}, err
	}
	totals := dto.MethodTotals{
		Cash:     summary.CashTotal,
		Card:     summary.CardTotal,
		Transfer: summary.TransferTotal,
	}
	totals.Total = totals.Cash + totals.Card + totals.Transfer
	return totals, nil
}

// classifyDeviation returns "normal" | "warning" | "critical".
// normal: |pct| <= 1%, warning: <= 5%, critical: > 5%.
func classifyDeviation(pct decimal.Decimal) string {
	abs := pct.Abs()
	one := decimal.NewFromInt(1)
	five := decimal.NewFromInt(5)
	switch {
	case abs.LessThanOrEqual(one):
		return "normal"
	case abs.LessThanOrEqual(five):
		return "warning"
	default:
		return "critical"
	}
}

func (s *closingService) closingToResponse(c *model.DayClosing, summary *model.DailySummary) *dto.ClosingResponse {
	expected := dto.MethodTotals{Cash: c.ExpectedCash, Card: c.ExpectedCard, Transfer: c.ExpectedTransfer}
	expected.Total = expected.Cash + expected.Card + expected.Transfer
	declared := dto.MethodTotals{Cash: c.DeclaredCash, Card: c.DeclaredCard, Transfer: c.DeclaredTransfer}
	declared.Total = declared.Cash + declared.Card + declared.Transfer

	resp := &dto.ClosingResponse{
		BusinessDay: c.BusinessDay,
		Expected:    expected,
		Declared:    declared,
		Deviation: dto.DeviationResponse{
			Amount:     c.Deviation,
			Percentage: c.DeviationPct,
			Class:      c.DeviationClass,
		},
		Notes:    c.Notes,
		ClosedAt: c.ClosedAt.Format(time.RFC3339),
	}
	if summary != nil {
		resp.Summary = dto.DailySummaryResponse{
			BusinessDay:     summary.BusinessDay,
			EntryTotal:      summary.EntryTotal,
			AdditionalTotal: summary.AdditionalTotal,
			RentalTotal:     summary.RentalTotal,
			DepositHeld:     summary.DepositHeld,
			CashTotal:       summary.CashTotal,
			CardTotal:       summary.CardTotal,
			TransferTotal:   summary.TransferTotal,
			Sessions:        summary.Sessions,
			Cancellations:   summary.Cancellations,
			Closed:          summary.Closed,
		}
	}
	return resp
}
