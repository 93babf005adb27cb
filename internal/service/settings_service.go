package service

import (
	"context"
	"errors"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/pricing"
	"saunapos/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	// Tariff builds the pricing configuration for a single computation.
	// Callers grab one Tariff per request and pass it down; they never cache
	// it across requests, so settings edits take effect immediately.
	Tariff(ctx context.Context) (pricing.Tariff, error)
}

type settingsService struct {
	repo repository.SettingsRepository
	loc  *time.Location
}

func NewSettingsService(repo repository.SettingsRepository, loc *time.Location) SettingsService {
	return &settingsService{repo: repo, loc: loc}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

// Update is the single write path for the price table. startHour bounds are
// enforced here so the core never sees an out-of-range value.
func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if req.StartHour < 0 || req.StartHour > 23 {
		return nil, errors.New("start hour must be between 0 and 23")
	}
	if req.DomesticCheckpointHour < 0 || req.DomesticCheckpointHour > 23 {
		return nil, errors.New("domestic checkpoint hour must be between 0 and 23")
	}
	if req.ForeignAccrualHours < 1 || req.ForeignAccrualHours > 168 {
		return nil, errors.New("foreign accrual hours must be between 1 and 168")
	}
	if req.NightPrice < req.DayPrice {
		return nil, errors.New("night price must not be lower than day price")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.StartHour = req.StartHour
	settings.DayPrice = req.DayPrice
	settings.NightPrice = req.NightPrice
	settings.DiscountAmount = req.DiscountAmount
	settings.ForeignPrice = req.ForeignPrice
	settings.DomesticCheckpointHour = req.DomesticCheckpointHour
	settings.ForeignAccrualHours = req.ForeignAccrualHours

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) Tariff(ctx context.Context) (pricing.Tariff, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return pricing.Tariff{}, err
	}
	return pricing.Tariff{
		StartHour:              settings.StartHour,
		DayPrice:               settings.DayPrice,
		NightPrice:             settings.NightPrice,
		DiscountAmount:         settings.DiscountAmount,
		ForeignPrice:           settings.ForeignPrice,
		DomesticCheckpointHour: settings.DomesticCheckpointHour,
		ForeignAccrualHours:    settings.ForeignAccrualHours,
		Location:               s.loc,
	}, nil
}

func settingsToResponse(m *model.PricingSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		StartHour:              m.StartHour,
		DayPrice:               m.DayPrice,
		NightPrice:             m.NightPrice,
		DiscountAmount:         m.DiscountAmount,
		ForeignPrice:           m.ForeignPrice,
		DomesticCheckpointHour: m.DomesticCheckpointHour,
		ForeignAccrualHours:    m.ForeignAccrualHours,
		UpdatedAt:              m.UpdatedAt.Format(time.RFC3339),
	}
}
