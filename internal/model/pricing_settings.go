package model

import "time"

// PricingSettings is the facility's single active price table and business-day
// configuration, stored as one row and edited by managers.
//
// Changing StartHour applies from the moment of the write onward: business-day
// labels already frozen on sessions and fees are never recomputed.
type PricingSettings struct {
	ID uint `gorm:"primaryKey"`

	// StartHour in [0,23]; validated at the settings service, the core
	// trusts it.
	StartHour int `gorm:"not null;default:10"`

	DayPrice       int `gorm:"not null"`
	NightPrice     int `gorm:"not null"`
	DiscountAmount int `gorm:"not null;default:0"`
	ForeignPrice   int `gorm:"not null"`

	// Accrual tuning knobs. CheckpointHour 0 = midnight.
	DomesticCheckpointHour int `gorm:"not null;default:0"`
	ForeignAccrualHours    int `gorm:"not null;default:24"`

	UpdatedAt time.Time
}
