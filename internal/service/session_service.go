package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/pricing"
	"saunapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService interface {
	CheckIn(ctx context.Context, staffID uuid.UUID, req dto.CheckInRequest) (*dto.SessionResponse, error)
	ChangeOption(ctx context.Context, id uuid.UUID, req dto.ChangeOptionRequest) (*dto.SessionResponse, error)
	CheckOut(ctx context.Context, id uuid.UUID, req dto.CheckOutRequest) (*dto.CheckOutResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context, filter dto.SessionFilter) (*dto.SessionListResponse, error)
}

type sessionService struct {
	repo       repository.SessionRepository
	feeRepo    repository.FeeRepository
	rentalRepo repository.RentalRepository
	settings   SettingsService
	now        func() time.Time
}

func NewSessionService(
	repo repository.SessionRepository,
	feeRepo repository.FeeRepository,
	rentalRepo repository.RentalRepository,
	settings SettingsService,
) SessionService {
	return &sessionService{
		repo:       repo,
		feeRepo:    feeRepo,
		rentalRepo: rentalRepo,
		settings:   settings,
		now:        time.Now,
	}
}

// NewSessionServiceWithClock pins "now" for tests that need deterministic
// accrual boundaries.
func NewSessionServiceWithClock(
	repo repository.SessionRepository,
	feeRepo repository.FeeRepository,
	rentalRepo repository.RentalRepository,
	settings SettingsService,
	now func() time.Time,
) SessionService {
	svc := NewSessionService(repo, feeRepo, rentalRepo, settings).(*sessionService)
	svc.now = now
	return svc
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CheckIn ──────────────────────────────────────────────────────────────────
// Business day, entry tier and base price are computed here once and frozen
// on the record. Everything later reads the frozen copies.

func (s *sessionService) CheckIn(ctx context.Context, staffID uuid.UUID, req dto.CheckInRequest) (*dto.SessionResponse, error) {
	// Guard: one in-use session per locker
	existing, err := s.repo.FindInUseByLocker(ctx, req.LockerNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("locker %d is already in use", req.LockerNumber)
	}

	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}

	enteredAt := s.now()
	if req.EnteredAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EnteredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid entered_at: %w", err)
		}
		enteredAt = t
	}

	opt, err := parseOption(req.Option, req.OptionAmount)
	if err != nil {
		return nil, err
	}
	foreign := req.Foreign || opt.Kind == pricing.OptionForeignRate

	tier := tariff.Classify(enteredAt)
	basePrice := tariff.BasePrice(tier)

	session := &model.LockerSession{
		LockerNumber: req.LockerNumber,
		StaffID:      staffID,
		EnteredAt:    enteredAt,
		BusinessDay:  tariff.BusinessDay(enteredAt),
		EntryTier:    string(tier),
		BasePrice:    basePrice,
		PriceOption:  string(opt.Kind),
		OptionAmount: req.OptionAmount,
		Foreign:      foreign,
		FinalPrice:   tariff.FinalPrice(basePrice, opt, foreign),
		Status:       model.SessionInUse,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return s.sessionToResponse(session, tariff), nil
}

// ── ChangeOption ─────────────────────────────────────────────────────────────
// Re-resolves the final price from the frozen base price. Allowed only while
// the session is in use.

func (s *sessionService) ChangeOption(ctx context.Context, id uuid.UUID, req dto.ChangeOptionRequest) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.Status != model.SessionInUse {
		return nil, errors.New("session is no longer in use")
	}

	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}

	opt, err := parseOption(req.Option, req.OptionAmount)
	if err != nil {
		return nil, err
	}
	if req.Foreign != nil {
		session.Foreign = *req.Foreign
	}
	if opt.Kind == pricing.OptionForeignRate {
		session.Foreign = true
	}

	session.PriceOption = string(opt.Kind)
	session.OptionAmount = req.OptionAmount
	session.FinalPrice = tariff.FinalPrice(session.BasePrice, opt, session.Foreign)

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionToResponse(session, tariff), nil
}

// ── CheckOut ─────────────────────────────────────────────────────────────────
// Two independent settlements: the base fee (entry business day) and the
// overstay fee (checkout business day). Each split is validated on its own;
// they are never merged. Session update and fee insert commit atomically.

func (s *sessionService) CheckOut(ctx context.Context, id uuid.UUID, req dto.CheckOutRequest) (*dto.CheckOutResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.Status != model.SessionInUse {
		return nil, errors.New("session is no longer in use")
	}

	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	accrual := tariff.AdditionalFee(session.EnteredAt, pricing.Tier(session.EntryTier), now, session.Foreign)

	if err := req.BasePayment.Validate(session.FinalPrice); err != nil {
		return nil, fmt.Errorf("base payment: %w", err)
	}

	feeOwed := accrual.Fee - req.FeeDiscount
	if feeOwed < 0 {
		feeOwed = 0
	}

	var feePayment pricing.Split
	if feeOwed > 0 {
		if req.FeePayment == nil {
			return nil, errors.New("additional fee is due but no fee payment was provided")
		}
		feePayment = *req.FeePayment
		if err := feePayment.Validate(feeOwed); err != nil {
			return nil, fmt.Errorf("additional fee payment: %w", err)
		}
	}

	var feeRecord *model.AdditionalFee
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		exitedAt := now
		session.ExitedAt = &exitedAt
		session.Status = model.SessionCheckedOut
		session.CashAmount = req.BasePayment.Cash
		session.CardAmount = req.BasePayment.Card
		session.TransferAmount = req.BasePayment.Transfer

		if err := s.updateSession(ctx, tx, session); err != nil {
			return err
		}

		if feeOwed > 0 {
			feeRecord = &model.AdditionalFee{
				SessionID:      session.ID,
				Amount:         feeOwed,
				OriginalAmount: accrual.Fee,
				AccrualCount:   accrual.Count,
				BusinessDay:    tariff.BusinessDay(now),
				CashAmount:     feePayment.Cash,
				CardAmount:     feePayment.Card,
				TransferAmount: feePayment.Transfer,
			}
			if err := s.feeRepo.CreateTx(tx, feeRecord); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.CheckOutResponse{Session: *s.sessionToResponse(session, tariff)}
	if feeRecord != nil {
		resp.AdditionalFee = &dto.AdditionalFeeResponse{
			ID:             feeRecord.ID.String(),
			Amount:         feeRecord.Amount,
			OriginalAmount: feeRecord.OriginalAmount,
			AccrualCount:   feeRecord.AccrualCount,
			BusinessDay:    feeRecord.BusinessDay,
			Payment:        feePayment,
		}
	}
	return resp, nil
}

// ── Cancel ───────────────────────────────────────────────────────────────────
// Terminal, no settlement. Refused while any rental deposit is still held —
// the drawer would otherwise end the day holding money with no record of
// where it should go.

func (s *sessionService) Cancel(ctx context.Context, id uuid.UUID) error {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("session not found")
	}
	if session.Status != model.SessionInUse {
		return errors.New("session is no longer in use")
	}

	held, err := s.rentalRepo.CountUnresolvedDeposits(ctx, id)
	if err != nil {
		return err
	}
	if held > 0 {
		return errors.New("resolve rental deposits before cancelling")
	}

	now := s.now()
	session.ExitedAt = &now
	session.Status = model.SessionCancelled
	return s.repo.Update(ctx, session)
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("session not found")
	}
	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.sessionToResponse(session, tariff)
	for _, rt := range session.Rentals {
		resp.Rentals = append(resp.Rentals, *rentalToResponse(&rt))
	}
	return resp, nil
}

func (s *sessionService) List(ctx context.Context, filter dto.SessionFilter) (*dto.SessionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sessions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, *s.sessionToResponse(&sessions[i], tariff))
	}
	return &dto.SessionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *sessionService) updateSession(ctx context.Context, tx *gorm.DB, m *model.LockerSession) error {
	if tx == nil {
		return s.repo.Update(ctx, m)
	}
	return s.repo.UpdateTx(tx, m)
}

func parseOption(kind string, amount *int) (pricing.Option, error) {
	if kind == "" {
		kind = string(pricing.OptionNone)
	}
	if !pricing.ValidOptionKind(kind) {
		return pricing.Option{}, fmt.Errorf("unknown pricing option %q", kind)
	}
	opt := pricing.Option{Kind: pricing.OptionKind(kind)}
	switch opt.Kind {
	case pricing.OptionCustomDiscount, pricing.OptionDirectPrice:
		if amount == nil {
			return pricing.Option{}, fmt.Errorf("pricing option %q requires an amount", kind)
		}
		opt.Amount = *amount
	}
	return opt, nil
}

// sessionToResponse renders a session with its live accrual state. For
// sessions still in use the accrual is evaluated at "now"; for terminal ones
// at the recorded exit instant, so a closed record keeps reporting what was
// actually owed.
func (s *sessionService) sessionToResponse(m *model.LockerSession, tariff pricing.Tariff) *dto.SessionResponse {
	asOf := s.now()
	if m.ExitedAt != nil {
		asOf = *m.ExitedAt
	}
	accrual := tariff.AdditionalFee(m.EnteredAt, pricing.Tier(m.EntryTier), asOf, m.Foreign)

	resp := &dto.SessionResponse{
		ID:           m.ID.String(),
		LockerNumber: m.LockerNumber,
		BusinessDay:  m.BusinessDay,
		EntryTier:    m.EntryTier,
		BasePrice:    m.BasePrice,
		Option:       m.PriceOption,
		OptionAmount: m.OptionAmount,
		Foreign:      m.Foreign,
		FinalPrice:   m.FinalPrice,
		Status:       m.Status,
		BasePayment: pricing.Split{
			Cash:     m.CashAmount,
			Card:     m.CardAmount,
			Transfer: m.TransferAmount,
		},
		Accrual: dto.AccrualResponse{
			Fee:     accrual.Fee,
			Periods: accrual.Periods,
			Count:   accrual.Count,
		},
		EnteredAt: m.EnteredAt.Format(time.RFC3339),
	}
	if m.ExitedAt != nil {
		t := m.ExitedAt.Format(time.RFC3339)
		resp.ExitedAt = &t
	}
	return resp
}
