package repository

import (
	"context"

	"saunapos/internal/model"

	"gorm.io/gorm"
)

type FeeRepository interface {
	CreateTx(tx *gorm.DB, f *model.AdditionalFee) error
	ListByBusinessDay(ctx context.Context, businessDay string) ([]model.AdditionalFee, error)
}

type feeRepo struct{ db *gorm.DB }

func NewFeeRepository(db *gorm.DB) FeeRepository { return &feeRepo{db: db} }

// CreateTx inserts inside the checkout transaction so the session status
// change and the fee record commit together.
func (r *feeRepo) CreateTx(tx *gorm.DB, f *model.AdditionalFee) error {
	return tx.Create(f).Error
}

func (r *feeRepo) ListByBusinessDay(ctx context.Context, businessDay string) ([]model.AdditionalFee, error) {
	var fees []model.AdditionalFee
	err := r.db.WithContext(ctx).
		Where("business_day = ?", businessDay).
		Order("created_at ASC").
		Find(&fees).Error
	return fees, err
}
