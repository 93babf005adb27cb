package repository

import (
	"context"

	"saunapos/internal/model"

	"gorm.io/gorm"
)

type ClosingRepository interface {
	Create(ctx context.Context, c *model.DayClosing) error
	FindByBusinessDay(ctx context.Context, businessDay string) (*model.DayClosing, error)
	List(ctx context.Context, page, limit int) ([]model.DayClosing, int64, error)
}

type closingRepo struct{ db *gorm.DB }

func NewClosingRepository(db *gorm.DB) ClosingRepository { return &closingRepo{db: db} }

func (r *closingRepo) Create(ctx context.Context, c *model.DayClosing) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *closingRepo) FindByBusinessDay(ctx context.Context, businessDay string) (*model.DayClosing, error) {
	var c model.DayClosing
	err := r.db.WithContext(ctx).Where("business_day = ?", businessDay).First(&c).Error
	return &c, err
}

func (r *closingRepo) List(ctx context.Context, page, limit int) ([]model.DayClosing, int64, error) {
	var closings []model.DayClosing
	var total int64

	q := r.db.WithContext(ctx).Model(&model.DayClosing{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("business_day DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&closings).Error
	return closings, total, err
}
