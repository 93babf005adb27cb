// Package pricing implements the business-day and fee computation core:
// business-day resolution, day/night tier classification, overstay fee
// accrual, pricing options, and split-payment validation. Everything here is
// pure math over explicit inputs — no clocks, no storage, no globals — so the
// same Tariff can be exercised with arbitrary timestamps in tests.
package pricing

import "time"

// Tariff bundles the facility's pricing configuration. One value is built per
// request from the persisted settings row and injected into every core call.
type Tariff struct {
	// StartHour is the local hour [0,23] at which a business day begins.
	StartHour int
	// DayPrice / NightPrice are base entry prices in whole KRW.
	DayPrice   int
	NightPrice int
	// DiscountAmount is the standard flat discount.
	DiscountAmount int
	// ForeignPrice is the flat entry price for foreign visitors.
	ForeignPrice int
	// DomesticCheckpointHour anchors domestic overstay boundaries.
	// 0 (the default) means local midnight.
	DomesticCheckpointHour int
	// ForeignAccrualHours is the rolling-window length for foreign overstay
	// billing. 0 falls back to 24.
	ForeignAccrualHours int
	// Location is the facility's civil timezone. All hour/date extraction
	// happens after conversion into it, never in the host timezone.
	Location *time.Location
}

// loc returns the facility timezone, defaulting to UTC so a zero Tariff is
// still usable in tests.
func (t Tariff) loc() *time.Location {
	if t.Location == nil {
		return time.UTC
	}
	return t.Location
}

// Localize converts an instant to the facility's civil time. Every other
// function in this package calls it before extracting hours or dates.
func (t Tariff) Localize(ts time.Time) time.Time {
	return ts.In(t.loc())
}

func (t Tariff) foreignWindow() time.Duration {
	h := t.ForeignAccrualHours
	if h <= 0 {
		h = 24
	}
	return time.Duration(h) * time.Hour
}
