package dto

import "saunapos/internal/pricing"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AttachRentalRequest struct {
	Item          string        `json:"item"           validate:"required,min=1,max=40"`
	Fee           int           `json:"fee"            validate:"min=0"`
	DepositAmount int           `json:"deposit_amount" validate:"min=0"`
	Payment       pricing.Split `json:"payment"        validate:"required"`
}

type SettleRentalRequest struct {
	// Disposition of the deposit at return: "refunded" | "forfeited"
	Deposit string `json:"deposit" validate:"required,oneof=refunded forfeited"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RentalResponse struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"session_id"`
	Item          string        `json:"item"`
	Fee           int           `json:"fee"`
	DepositAmount int           `json:"deposit_amount"`
	DepositStatus string        `json:"deposit_status"`
	BusinessDay   string        `json:"business_day"`
	Payment       pricing.Split `json:"payment"`
	RentedAt      string        `json:"rented_at"`
	ReturnedAt    *string       `json:"returned_at"`
}
