package dto

// Locker display colors derived from live session state. The mapping from
// accrual output to a color lives here in the presentation layer, not in the
// pricing core.
const (
	LockerEmpty     = "empty"
	LockerDay       = "day"
	LockerNight     = "night"
	LockerCarryover = "carryover" // in use since a prior business day, no fee yet
	LockerOverstay  = "overstay"  // nonzero accrual count
)

// LockerStatus is one tile on the locker board, recomputed from "now" on
// every poll.
type LockerStatus struct {
	LockerNumber int    `json:"locker_number"`
	Color        string `json:"color"`
	SessionID    string `json:"session_id,omitempty"`
	EntryTier    string `json:"entry_tier,omitempty"`
	BusinessDay  string `json:"business_day,omitempty"`
	// Badge is the charged-boundary count ("x2" on the UI); zero = no badge.
	Badge int `json:"badge"`
	Fee   int `json:"fee"`
}

type BoardResponse struct {
	BusinessDay string         `json:"business_day"`
	Lockers     []LockerStatus `json:"lockers"`
}
