package pricing

import "time"

// Accrual is the outcome of an overstay computation at a given instant.
type Accrual struct {
	// Fee is the cumulative overstay charge owed, in whole KRW.
	Fee int
	// Periods counts every accrual boundary passed since entry, including
	// free ones. Informational — drives nothing financial.
	Periods int
	// Count counts only the boundaries that carry a charge. The locker board
	// renders it as the overstay badge ("x2").
	Count int
}

// AdditionalFee computes the overstay charge for a session at `now`.
//
// Domestic visitors are billed on calendar boundaries: each checkpoint
// (midnight, unless DomesticCheckpointHour says otherwise) crossed while the
// locker stays occupied is an accrual point. Which points actually charge
// depends on when the customer came in:
//
//   - day entry (07:00–18:59): the first crossing upgrades the stay to the
//     night rate, charging NightPrice-DayPrice; every later crossing charges
//     a full NightPrice.
//   - evening entry (19:00 onward): the first crossing is free — a night-rate
//     customer is expected to cross into the next calendar date. Charging
//     starts at the second crossing, a full NightPrice each.
//   - early-morning entry (00:00–06:59): no grace. Every crossing, the first
//     included, charges a full NightPrice.
//
// Foreign visitors are billed by duration instead: one NightPrice per
// complete ForeignAccrualHours window since entry, regardless of entry tier.
//
// A `now` earlier than `entry` yields a zero Accrual rather than an error:
// small clock skew between the terminal and the recorded entry time must
// degrade to "no fee yet", not crash a live board refresh.
func (t Tariff) AdditionalFee(entry time.Time, entryTier Tier, now time.Time, foreign bool) Accrual {
	if !now.After(entry) {
		return Accrual{}
	}

	if foreign {
		periods := int(now.Sub(entry) / t.foreignWindow())
		return Accrual{
			Fee:     periods * t.NightPrice,
			Periods: periods,
			Count:   periods,
		}
	}

	periods := t.checkpointsCrossed(entry, now)
	if periods == 0 {
		return Accrual{}
	}

	switch {
	case entryTier == TierDay:
		return Accrual{
			Fee:     (t.NightPrice - t.DayPrice) + (periods-1)*t.NightPrice,
			Periods: periods,
			Count:   periods,
		}
	case t.Localize(entry).Hour() >= dayTierEndHour:
		charged := periods - 1
		return Accrual{
			Fee:     charged * t.NightPrice,
			Periods: periods,
			Count:   charged,
		}
	default:
		// Night tier, pre-dawn entry.
		return Accrual{
			Fee:     periods * t.NightPrice,
			Periods: periods,
			Count:   periods,
		}
	}
}

// checkpointsCrossed counts checkpoint instants in (entry, now]. Checkpoints
// are anchored to the local calendar (a crossing happens the moment the local
// clock reads the checkpoint hour), so the walk advances by calendar days
// rather than fixed 24h steps.
func (t Tariff) checkpointsCrossed(entry, now time.Time) int {
	local := t.Localize(entry)
	boundary := time.Date(local.Year(), local.Month(), local.Day(), t.DomesticCheckpointHour, 0, 0, 0, t.loc())
	if !boundary.After(local) {
		boundary = boundary.AddDate(0, 0, 1)
	}

	nowLocal := t.Localize(now)
	crossed := 0
	for !boundary.After(nowLocal) {
		crossed++
		boundary = boundary.AddDate(0, 0, 1)
	}
	return crossed
}
