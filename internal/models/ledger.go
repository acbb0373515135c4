package models

import "fmt"

// ReasonCategory classifies a ledger delta independently of the free-text
// reason shown to users. The legacy implementation sniffed the reason string
// for "兑换"/"抽奖" markers to decide whether a debit was punitive; the
// category is now carried explicitly so a manual deduction whose reason
// happens to contain a marker can never be miscategorised.
type ReasonCategory string

const (
	// CategoryManual covers teacher-entered rewards and penalties.
	CategoryManual ReasonCategory = "MANUAL"
	// CategoryRedemption marks debits for shop reward purchases.
	CategoryRedemption ReasonCategory = "REDEMPTION"
	// CategoryDrawCost marks the turntable spin charge.
	CategoryDrawCost ReasonCategory = "DRAW_COST"
	// CategoryDrawBonus marks bonus points credited by a winning spin.
	CategoryDrawBonus ReasonCategory = "DRAW_BONUS"
)

// Valid reports whether the category is one of the known values.
func (c ReasonCategory) Valid() bool {
	switch c {
	case CategoryManual, CategoryRedemption, CategoryDrawCost, CategoryDrawBonus:
		return true
	default:
		return false
	}
}

// Punitive reports whether a negative delta of this category counts toward
// the student's lifetime deduction total. Redemptions and draw charges spend
// points without being disciplinary, so they are exempt.
func (c ReasonCategory) Punitive() bool {
	return c == CategoryManual || c == ""
}

// FormatChange renders a delta with an explicit sign, matching the audit
// record convention ("+15", "-5").
func FormatChange(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
