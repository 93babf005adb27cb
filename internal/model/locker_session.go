package model

import (
	"time"

	"github.com/google/uuid"
)

// Session status values. Both checked_out and cancelled are terminal.
const (
	SessionInUse      = "in_use"
	SessionCheckedOut = "checked_out"
	SessionCancelled  = "cancelled"
)

// LockerSession is one customer's occupancy of a numbered locker.
//
// BusinessDay, EntryTier and BasePrice are computed once at check-in and
// frozen: a later settings change or a later "now" never rewrites them. The
// overstay fee is the only time-dependent quantity, and it is recomputed from
// EnteredAt on every read and persisted separately (AdditionalFee) at
// checkout.
type LockerSession struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LockerNumber int       `gorm:"not null;index"`
	StaffID      uuid.UUID `gorm:"type:uuid;not null"`

	EnteredAt time.Time `gorm:"not null"`
	ExitedAt  *time.Time

	// BusinessDay is the accounting date of check-in, frozen at creation.
	BusinessDay string `gorm:"type:varchar(10);not null;index"`
	// EntryTier: "day" | "night", frozen at creation.
	EntryTier string `gorm:"type:varchar(10);not null"`
	// BasePrice is the tier price at entry time, frozen at creation.
	BasePrice int `gorm:"not null"`

	// PriceOption: "none" | "flat_discount" | "custom_discount" |
	// "foreign_rate" | "direct_price". Exactly one active per session.
	PriceOption  string `gorm:"type:varchar(20);not null;default:'none'"`
	OptionAmount *int
	Foreign      bool `gorm:"not null;default:false"`

	// FinalPrice is BasePrice after the option, excluding overstay fees.
	FinalPrice int `gorm:"not null"`

	Status string `gorm:"type:varchar(20);not null;default:'in_use';index"`

	// Base-fee settlement, recorded at checkout. Sums to FinalPrice.
	CashAmount     int `gorm:"not null;default:0"`
	CardAmount     int `gorm:"not null;default:0"`
	TransferAmount int `gorm:"not null;default:0"`

	AdditionalFees []AdditionalFee `gorm:"foreignKey:SessionID"`
	Rentals        []Rental        `gorm:"foreignKey:SessionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
