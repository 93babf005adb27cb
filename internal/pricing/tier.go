package pricing

import "time"

// Tier is the day/night classification of an entry timestamp. It depends only
// on the local clock hour, never on the business-day start hour.
type Tier string

const (
	TierDay   Tier = "day"   // local hour in [7,19)
	TierNight Tier = "night" // complement: 19:00–06:59
)

const (
	dayTierStartHour = 7
	dayTierEndHour   = 19
)

// Classify returns the tier of an instant in the facility's local time.
func (t Tariff) Classify(ts time.Time) Tier {
	h := t.Localize(ts).Hour()
	if h >= dayTierStartHour && h < dayTierEndHour {
		return TierDay
	}
	return TierNight
}

// BasePrice is the entry price for a tier. Pure lookup.
func (t Tariff) BasePrice(tier Tier) int {
	if tier == TierDay {
		return t.DayPrice
	}
	return t.NightPrice
}

// ValidTier reports whether s names a known tier. Used when rehydrating
// persisted records.
func ValidTier(s string) bool {
	return Tier(s) == TierDay || Tier(s) == TierNight
}
