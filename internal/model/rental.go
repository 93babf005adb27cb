package model

import (
	"time"

	"github.com/google/uuid"
)

// Deposit disposition values for a rental item.
const (
	DepositNone      = "none"
	DepositReceived  = "received"
	DepositRefunded  = "refunded"
	DepositForfeited = "forfeited"
)

// Rental is an ancillary item (towel, blanket) attached to a locker session.
// Its revenue and deposit flow are an independent stream: never commingled
// with the session's own payment breakdown, and stamped with its own business
// day (rental day, or return day when the deposit is forfeited late).
type Rental struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`

	Item string `gorm:"type:varchar(40);not null"`
	Fee  int    `gorm:"not null"`

	DepositAmount int `gorm:"not null;default:0"`
	// DepositStatus: "none" | "received" | "refunded" | "forfeited"
	DepositStatus string `gorm:"type:varchar(20);not null;default:'none'"`

	BusinessDay string `gorm:"type:varchar(10);not null;index"`

	CashAmount     int `gorm:"not null;default:0"`
	CardAmount     int `gorm:"not null;default:0"`
	TransferAmount int `gorm:"not null;default:0"`

	RentedAt   time.Time `gorm:"not null"`
	ReturnedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
