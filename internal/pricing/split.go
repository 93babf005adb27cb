package pricing

import (
	"errors"
	"fmt"
)

// ErrNegativeAmount rejects a split containing a negative method amount,
// distinct from a sum mismatch so the UI can point at the offending field.
var ErrNegativeAmount = errors.New("payment amounts must not be negative")

// AmountMismatchError reports a split whose methods do not sum to the charge.
type AmountMismatchError struct {
	Actual int
	Target int
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment split totals %d, charge is %d", e.Actual, e.Target)
}

// Split is one settlement broken down by payment method. A checkout carries
// two independent Splits — one for the base fee under the entry business day,
// one for the overstay fee under the checkout business day — which are never
// merged or cross-validated.
type Split struct {
	Cash     int `json:"cash"`
	Card     int `json:"card"`
	Transfer int `json:"transfer"`
}

// Total sums the three methods.
func (s Split) Total() int {
	return s.Cash + s.Card + s.Transfer
}

// Validate checks the split settles target exactly. No tolerance: a
// single-won deviation is a mismatch the operator must reconcile before the
// save goes through.
func (s Split) Validate(target int) error {
	if s.Cash < 0 || s.Card < 0 || s.Transfer < 0 {
		return ErrNegativeAmount
	}
	if total := s.Total(); total != target {
		return &AmountMismatchError{Actual: total, Target: target}
	}
	return nil
}
