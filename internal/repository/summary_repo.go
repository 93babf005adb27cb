package repository

import (
	"context"

	"saunapos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryRepository interface {
	Upsert(ctx context.Context, s *model.DailySummary) error
	FindByBusinessDay(ctx context.Context, businessDay string) (*model.DailySummary, error)
	ListRange(ctx context.Context, from, to string) ([]model.DailySummary, error)
}

type summaryRepo struct{ db *gorm.DB }

func NewSummaryRepository(db *gorm.DB) SummaryRepository { return &summaryRepo{db: db} }

// Upsert writes the rollup keyed by business day. The rollup cron recomputes
// totals from source records each tick, so the conflict action replaces them
// wholesale rather than incrementing.
func (r *summaryRepo) Upsert(ctx context.Context, s *model.DailySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"entry_total", "additional_total", "rental_total", "deposit_held",
			"cash_total", "card_total", "transfer_total",
			"sessions", "cancellations", "closed", "updated_at",
		}),
	}).Create(s).Error
}

func (r *summaryRepo) FindByBusinessDay(ctx context.Context, businessDay string) (*model.DailySummary, error) {
	var s model.DailySummary
	err := r.db.WithContext(ctx).Where("business_day = ?", businessDay).First(&s).Error
	return &s, err
}

func (r *summaryRepo) ListRange(ctx context.Context, from, to string) ([]model.DailySummary, error) {
	var summaries []model.DailySummary
	err := r.db.WithContext(ctx).
		Where("business_day >= ? AND business_day <= ?", from, to).
		Order("business_day ASC").
		Find(&summaries).Error
	return summaries, err
}
