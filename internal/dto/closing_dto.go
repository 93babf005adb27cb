package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ClosingDeclaration is the staff member's blind drawer count per method.
type ClosingDeclaration struct {
	Cash     int `json:"cash"     validate:"min=0"`
	Card     int `json:"card"     validate:"min=0"`
	Transfer int `json:"transfer" validate:"min=0"`
}

type CloseDayRequest struct {
	// BusinessDay to close; empty = the business day of "now".
	BusinessDay string             `json:"business_day" validate:"omitempty,datetime=2006-01-02"`
	Declaration ClosingDeclaration `json:"declaration"  validate:"required"`
	Notes       *string            `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MethodTotals struct {
	Cash     int `json:"cash"`
	Card     int `json:"card"`
	Transfer int `json:"transfer"`
	Total    int `json:"total"`
}

type DeviationResponse struct {
	Amount     int             `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Class      string          `json:"class"` // normal | warning | critical
}

type ClosingResponse struct {
	BusinessDay string            `json:"business_day"`
	Expected    MethodTotals      `json:"expected"`
	Declared    MethodTotals      `json:"declared"`
	Deviation   DeviationResponse `json:"deviation"`
	Notes       *string           `json:"notes"`
	ClosedAt    string            `json:"closed_at"`

	Summary DailySummaryResponse `json:"summary"`
}

type DailySummaryResponse struct {
	BusinessDay     string `json:"business_day"`
	EntryTotal      int    `json:"entry_total"`
	AdditionalTotal int    `json:"additional_total"`
	RentalTotal     int    `json:"rental_total"`
	DepositHeld     int    `json:"deposit_held"`
	CashTotal       int    `json:"cash_total"`
	CardTotal       int    `json:"card_total"`
	TransferTotal   int    `json:"transfer_total"`
	Sessions        int    `json:"sessions"`
	Cancellations   int    `json:"cancellations"`
	Closed          bool   `json:"closed"`
}
