package repository

import (
	"context"
	"errors"

	"saunapos/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.PricingSettings, error)
	Save(ctx context.Context, s *model.PricingSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

// Get returns the singleton settings row, seeding sensible defaults on first
// run so a fresh install can check customers in before anyone opens the
// settings screen.
func (r *settingsRepo) Get(ctx context.Context) (*model.PricingSettings, error) {
	var s model.PricingSettings
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.PricingSettings{
			StartHour:           10,
			DayPrice:            10000,
			NightPrice:          15000,
			ForeignPrice:        25000,
			ForeignAccrualHours: 24,
		}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingsRepo) Save(ctx context.Context, s *model.PricingSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
