package dto

import "saunapos/internal/pricing"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CheckInRequest struct {
	LockerNumber int  `json:"locker_number" validate:"required,min=1"`
	Foreign      bool `json:"foreign"`
	// Option defaults to "none"; amount required for custom_discount and
	// direct_price.
	Option       string `json:"option"        validate:"omitempty,oneof=none flat_discount custom_discount foreign_rate direct_price"`
	OptionAmount *int   `json:"option_amount" validate:"omitempty,min=0"`
	// EnteredAt override for backdated entry (normally empty = server now).
	EnteredAt *string `json:"entered_at" validate:"omitempty"`
}

type ChangeOptionRequest struct {
	Option       string `json:"option"        validate:"required,oneof=none flat_discount custom_discount foreign_rate direct_price"`
	OptionAmount *int   `json:"option_amount" validate:"omitempty,min=0"`
	Foreign      *bool  `json:"foreign"`
}

type CheckOutRequest struct {
	// BasePayment settles FinalPrice and books under the entry business day.
	BasePayment pricing.Split `json:"base_payment" validate:"required"`
	// FeePayment settles the overstay fee and books under the checkout
	// business day. Required iff the accrual engine reports a nonzero fee.
	FeePayment *pricing.Split `json:"fee_payment"`
	// FeeDiscount reduces the overstay charge at the operator's discretion;
	// the pre-discount amount is kept on the fee record.
	FeeDiscount int `json:"fee_discount" validate:"min=0"`
}

type SessionFilter struct {
	BusinessDay string `form:"business_day"`
	Locker      int    `form:"locker" validate:"omitempty,min=1"`
	Status      string `form:"status,default=in_use"` // in_use | checked_out | cancelled | all
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AccrualResponse struct {
	Fee     int `json:"fee"`
	Periods int `json:"periods"`
	Count   int `json:"count"`
}

type SessionResponse struct {
	ID           string `json:"id"`
	LockerNumber int    `json:"locker_number"`
	BusinessDay  string `json:"business_day"`
	EntryTier    string `json:"entry_tier"`
	BasePrice    int    `json:"base_price"`
	Option       string `json:"option"`
	OptionAmount *int   `json:"option_amount"`
	Foreign      bool   `json:"foreign"`
	FinalPrice   int    `json:"final_price"`
	Status       string `json:"status"`

	BasePayment pricing.Split `json:"base_payment"`

	// Accrual is the live overstay state at response time (or the settled
	// state for checked-out sessions).
	Accrual AccrualResponse `json:"accrual"`

	Rentals []RentalResponse `json:"rentals,omitempty"`

	EnteredAt string  `json:"entered_at"`
	ExitedAt  *string `json:"exited_at"`
}

type CheckOutResponse struct {
	Session       SessionResponse        `json:"session"`
	AdditionalFee *AdditionalFeeResponse `json:"additional_fee"`
}

type AdditionalFeeResponse struct {
	ID             string        `json:"id"`
	Amount         int           `json:"amount"`
	OriginalAmount int           `json:"original_amount"`
	AccrualCount   int           `json:"accrual_count"`
	BusinessDay    string        `json:"business_day"`
	Payment        pricing.Split `json:"payment"`
}

type SessionListResponse struct {
	Data  []SessionResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
