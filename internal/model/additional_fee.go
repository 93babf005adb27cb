package model

import (
	"time"

	"github.com/google/uuid"
)

// AdditionalFee is an overstay charge settled at checkout. Append-only —
// never updated or deleted.
//
// It is a separate record rather than columns on LockerSession because the
// two settle under different accounting dates: the base fee reports under the
// entry business day, the overstay fee under the checkout business day, each
// with its own payment breakdown.
type AdditionalFee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Amount is the settled charge after any checkout-time discount;
	// OriginalAmount is what the accrual engine computed.
	Amount         int `gorm:"not null"`
	OriginalAmount int `gorm:"not null"`
	// AccrualCount is the number of charged boundaries at checkout.
	AccrualCount int `gorm:"not null"`

	// BusinessDay is the accounting date of the checkout, not of the entry.
	BusinessDay string `gorm:"type:varchar(10);not null;index"`

	CashAmount     int `gorm:"not null;default:0"`
	CardAmount     int `gorm:"not null;default:0"`
	TransferAmount int `gorm:"not null;default:0"`

	CreatedAt time.Time
}
