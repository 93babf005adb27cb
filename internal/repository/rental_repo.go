package repository

import (
	"context"

	"saunapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RentalRepository interface {
	Create(ctx context.Context, rt *model.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Rental, error)
	ListByBusinessDay(ctx context.Context, businessDay string) ([]model.Rental, error)
	Update(ctx context.Context, rt *model.Rental) error
	CountUnresolvedDeposits(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

type rentalRepo struct{ db *gorm.DB }

func NewRentalRepository(db *gorm.DB) RentalRepository { return &rentalRepo{db: db} }

func (r *rentalRepo) Create(ctx context.Context, rt *model.Rental) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *rentalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	var rt model.Rental
	err := r.db.WithContext(ctx).First(&rt, id).Error
	return &rt, err
}

func (r *rentalRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Rental, error) {
	var rentals []model.Rental
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("rented_at ASC").
		Find(&rentals).Error
	return rentals, err
}

func (r *rentalRepo) ListByBusinessDay(ctx context.Context, businessDay string) ([]model.Rental, error) {
	var rentals []model.Rental
	err := r.db.WithContext(ctx).
		Where("business_day = ?", businessDay).
		Order("rented_at ASC").
		Find(&rentals).Error
	return rentals, err
}

func (r *rentalRepo) Update(ctx context.Context, rt *model.Rental) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

// CountUnresolvedDeposits counts rentals still holding a deposit. Cancellation
// is refused while this is nonzero.
func (r *rentalRepo) CountUnresolvedDeposits(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Rental{}).
		Where("session_id = ? AND deposit_status = ?", sessionID, model.DepositReceived).
		Count(&n).Error
	return n, err
}
