package pricing

// OptionKind identifies the single pricing option active on a session.
// Options are a choice, not a combination: a foreign visitor who also gets a
// discount is entered as a direct price, never as a composed rule.
type OptionKind string

const (
	OptionNone           OptionKind = "none"
	OptionFlatDiscount   OptionKind = "flat_discount"   // standard configured discount
	OptionCustomDiscount OptionKind = "custom_discount" // operator-entered discount
	OptionForeignRate    OptionKind = "foreign_rate"    // flat foreigner price
	OptionDirectPrice    OptionKind = "direct_price"    // manual override, wins over everything
)

// ValidOptionKind reports whether s names a known option.
func ValidOptionKind(s string) bool {
	switch OptionKind(s) {
	case OptionNone, OptionFlatDiscount, OptionCustomDiscount, OptionForeignRate, OptionDirectPrice:
		return true
	}
	return false
}

// Option is the tagged pricing variant applied to a base price. Amount is
// meaningful for custom discounts and direct prices; the flat discount and
// foreign rate read their amounts from the Tariff.
type Option struct {
	Kind   OptionKind
	Amount int
}

// FinalPrice resolves the charge for a session's base fee. The chain is a
// strict priority, evaluated top to bottom:
//
//	direct price > foreign rate > discount > base
//
// A discount larger than the base price goes through as entered — the UI
// warns the operator, the core does not second-guess the till.
func (t Tariff) FinalPrice(base int, opt Option, foreign bool) int {
	if opt.Kind == OptionDirectPrice {
		return opt.Amount
	}
	if foreign || opt.Kind == OptionForeignRate {
		return t.ForeignPrice
	}
	switch opt.Kind {
	case OptionFlatDiscount:
		return base - t.DiscountAmount
	case OptionCustomDiscount:
		return base - opt.Amount
	}
	return base
}
