package pricing

import (
	"fmt"
	"time"
)

// BusinessDayLayout is the canonical label format for a business day.
const BusinessDayLayout = "2006-01-02"

// BusinessDay maps an instant to its accounting date. A timestamp whose local
// hour is earlier than StartHour still belongs to the previous day's books:
// a 02:00 checkout settles under the evening that opened at 10:00 the day
// before. The label is frozen on records at write time — a later StartHour
// change never relabels history.
func (t Tariff) BusinessDay(ts time.Time) string {
	local := t.Localize(ts)
	if local.Hour() < t.StartHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(BusinessDayLayout)
}

// BusinessDayRange returns the half-open window [start, end) covered by a
// business-day label: StartHour:00 local on the label's date up to the same
// clock time one calendar day later. Used for interval-overlap queries
// ("which settlements belong to day X").
func (t Tariff) BusinessDayRange(label string) (time.Time, time.Time, error) {
	date, err := time.ParseInLocation(BusinessDayLayout, label, t.loc())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid business day %q: %w", label, err)
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), t.StartHour, 0, 0, 0, t.loc())
	return start, start.AddDate(0, 0, 1), nil
}
