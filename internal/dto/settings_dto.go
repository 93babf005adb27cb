package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateSettingsRequest carries the full price table; partial updates are not
// supported to keep the active configuration unambiguous.
type UpdateSettingsRequest struct {
	StartHour              int `json:"start_hour"               validate:"min=0,max=23"`
	DayPrice               int `json:"day_price"                validate:"min=0"`
	NightPrice             int `json:"night_price"              validate:"min=0"`
	DiscountAmount         int `json:"discount_amount"          validate:"min=0"`
	ForeignPrice           int `json:"foreign_price"            validate:"min=0"`
	DomesticCheckpointHour int `json:"domestic_checkpoint_hour" validate:"min=0,max=23"`
	ForeignAccrualHours    int `json:"foreign_accrual_hours"    validate:"min=1,max=168"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SettingsResponse struct {
	StartHour              int    `json:"start_hour"`
	DayPrice               int    `json:"day_price"`
	NightPrice             int    `json:"night_price"`
	DiscountAmount         int    `json:"discount_amount"`
	ForeignPrice           int    `json:"foreign_price"`
	DomesticCheckpointHour int    `json:"domestic_checkpoint_hour"`
	ForeignAccrualHours    int    `json:"foreign_accrual_hours"`
	UpdatedAt              string `json:"updated_at"`
}
