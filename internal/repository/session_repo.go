package repository

import (
	"context"

	"saunapos/internal/dto"
	"saunapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.LockerSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LockerSession, error)
	FindInUseByLocker(ctx context.Context, lockerNumber int) (*model.LockerSession, error)
	ListInUse(ctx context.Context) ([]model.LockerSession, error)
	List(ctx context.Context, filter dto.SessionFilter) ([]model.LockerSession, int64, error)
	Update(ctx context.Context, s *model.LockerSession) error
	UpdateTx(tx *gorm.DB, s *model.LockerSession) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) Create(ctx context.Context, s *model.LockerSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LockerSession, error) {
	var s model.LockerSession
	err := r.db.WithContext(ctx).Preload("Rentals").Preload("AdditionalFees").First(&s, id).Error
	return &s, err
}

func (r *sessionRepo) FindInUseByLocker(ctx context.Context, lockerNumber int) (*model.LockerSession, error) {
	var s model.LockerSession
	err := r.db.WithContext(ctx).
		Where("locker_number = ? AND status = ?", lockerNumber, model.SessionInUse).
		First(&s).Error
	return &s, err
}

func (r *sessionRepo) ListInUse(ctx context.Context) ([]model.LockerSession, error) {
	var sessions []model.LockerSession
	err := r.db.WithContext(ctx).
		Where("status = ?", model.SessionInUse).
		Order("locker_number ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) List(ctx context.Context, filter dto.SessionFilter) ([]model.LockerSession, int64, error) {
	var sessions []model.LockerSession
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.LockerSession{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BusinessDay != "" {
		q = q.Where("business_day = ?", filter.BusinessDay)
	}
	if filter.Locker > 0 {
		q = q.Where("locker_number = ?", filter.Locker)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Rentals").Preload("AdditionalFees").
		Order("entered_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *sessionRepo) Update(ctx context.Context, s *model.LockerSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sessionRepo) UpdateTx(tx *gorm.DB, s *model.LockerSession) error {
	return tx.Save(s).Error
}
