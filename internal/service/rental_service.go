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
)

type RentalService interface {
	Attach(ctx context.Context, sessionID uuid.UUID, req dto.AttachRentalRequest) (*dto.RentalResponse, error)
	Settle(ctx context.Context, rentalID uuid.UUID, req dto.SettleRentalRequest) (*dto.RentalResponse, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]dto.RentalResponse, error)
}

type rentalService struct {
	repo        repository.RentalRepository
	sessionRepo repository.SessionRepository
	settings    SettingsService
	now         func() time.Time
}

func NewRentalService(
	repo repository.RentalRepository,
	sessionRepo repository.SessionRepository,
	settings SettingsService,
) RentalService {
	return &rentalService{repo: repo, sessionRepo: sessionRepo, settings: settings, now: time.Now}
}

// NewRentalServiceWithClock pins "now" for deterministic business-day stamps
// in tests.
func NewRentalServiceWithClock(
	repo repository.RentalRepository,
	sessionRepo repository.SessionRepository,
	settings SettingsService,
	now func() time.Time,
) RentalService {
	svc := NewRentalService(repo, sessionRepo, settings).(*rentalService)
	svc.now = now
	return svc
}

// ── Attach ───────────────────────────────────────────────────────────────────
// A rental settles at hand-over: its split must cover fee + deposit. The
// record gets its own business-day stamp — rental revenue never rides on the
// session's settlement.

func (s *rentalService) Attach(ctx context.Context, sessionID uuid.UUID, req dto.AttachRentalRequest) (*dto.RentalResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.Status != model.SessionInUse {
		return nil, errors.New("session is no longer in use")
	}

	if err := req.Payment.Validate(req.Fee + req.DepositAmount); err != nil {
		return nil, fmt.Errorf("rental payment: %w", err)
	}

	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	depositStatus := model.DepositNone
	if req.DepositAmount > 0 {
		depositStatus = model.DepositReceived
	}

	rental := &model.Rental{
		SessionID:      sessionID,
		Item:           req.Item,
		Fee:            req.Fee,
		DepositAmount:  req.DepositAmount,
		DepositStatus:  depositStatus,
		BusinessDay:    tariff.BusinessDay(now),
		CashAmount:     req.Payment.Cash,
		CardAmount:     req.Payment.Card,
		TransferAmount: req.Payment.Transfer,
		RentedAt:       now,
	}
	if err := s.repo.Create(ctx, rental); err != nil {
		return nil, err
	}
	return rentalToResponse(rental), nil
}

// ── Settle ───────────────────────────────────────────────────────────────────
// Deposit disposition at return. A refund keeps the rental on its original
// business day; a forfeit re-stamps to the return day, since the forfeited
// deposit becomes revenue the day it is kept.

func (s *rentalService) Settle(ctx context.Context, rentalID uuid.UUID, req dto.SettleRentalRequest) (*dto.RentalResponse, error) {
	rental, err := s.repo.FindByID(ctx, rentalID)
	if err != nil {
		return nil, errors.New("rental not found")
	}
	if rental.DepositStatus != model.DepositReceived {
		return nil, errors.New("rental has no deposit to settle")
	}

	now := s.now()
	rental.ReturnedAt = &now

	switch req.Deposit {
	case model.DepositRefunded:
		rental.DepositStatus = model.DepositRefunded
	case model.DepositForfeited:
		rental.DepositStatus = model.DepositForfeited
		tariff, err := s.settings.Tariff(ctx)
		if err != nil {
			return nil, err
		}
		rental.BusinessDay = tariff.BusinessDay(now)
	default:
		return nil, fmt.Errorf("unknown deposit disposition %q", req.Deposit)
	}

	if err := s.repo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rentalToResponse(rental), nil
}

func (s *rentalService) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]dto.RentalResponse, error) {
	rentals, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RentalResponse, 0, len(rentals))
	for i := range rentals {
		resp = append(resp, *rentalToResponse(&rentals[i]))
	}
	return resp, nil
}

func rentalToResponse(m *model.Rental) *dto.RentalResponse {
	resp := &dto.RentalResponse{
		ID:            m.ID.String(),
		SessionID:     m.SessionID.String(),
		Item:          m.Item,
		Fee:           m.Fee,
		DepositAmount: m.DepositAmount,
		DepositStatus: m.DepositStatus,
		BusinessDay:   m.BusinessDay,
		Payment: pricing.Split{
			Cash:     m.CashAmount,
			Card:     m.CardAmount,
			Transfer: m.TransferAmount,
		},
		RentedAt: m.RentedAt.Format(time.RFC3339),
	}
	if m.ReturnedAt != nil {
		t := m.ReturnedAt.Format(time.RFC3339)
		resp.ReturnedAt = &t
	}
	return resp
}
