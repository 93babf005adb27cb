package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayClosing records the end-of-day cash reconciliation for one business day.
// The staff member counts the drawer blind; the deviation against the
// expected totals is computed only after the declaration is submitted.
// DeviationClass: "normal" | "warning" | "critical"
type DayClosing struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDay string    `gorm:"type:varchar(10);not null;uniqueIndex"`
	StaffID     uuid.UUID `gorm:"type:uuid;not null"`

	ExpectedCash     int `gorm:"not null"`
	ExpectedCard     int `gorm:"not null"`
	ExpectedTransfer int `gorm:"not null"`

	DeclaredCash     int `gorm:"not null"`
	DeclaredCard     int `gorm:"not null"`
	DeclaredTransfer int `gorm:"not null"`

	Deviation      int             `gorm:"not null"`
	DeviationPct   decimal.Decimal `gorm:"type:decimal(6,2)"`
	DeviationClass string          `gorm:"type:varchar(20);not null"`
	Notes          *string

	ClosedAt  time.Time
	CreatedAt time.Time
}
