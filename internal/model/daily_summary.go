package model

import "time"

// DailySummary is the per-business-day revenue rollup, upserted by key
// (BusinessDay) by the rollup cron and finalized by the closing flow.
// Entry, overstay and rental revenue stay separately attributable.
type DailySummary struct {
	ID uint `gorm:"primaryKey"`

	BusinessDay string `gorm:"type:varchar(10);not null;uniqueIndex"`

	EntryTotal      int `gorm:"not null;default:0"`
	AdditionalTotal int `gorm:"not null;default:0"`
	RentalTotal     int `gorm:"not null;default:0"`
	DepositHeld     int `gorm:"not null;default:0"`

	CashTotal     int `gorm:"not null;default:0"`
	CardTotal     int `gorm:"not null;default:0"`
	TransferTotal int `gorm:"not null;default:0"`

	Sessions     int `gorm:"not null;default:0"`
	Cancellations int `gorm:"not null;default:0"`

	// Closed is set by the end-of-day closing; further rollup ticks skip
	// closed days.
	Closed    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
