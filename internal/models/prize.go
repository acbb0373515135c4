package models

import (
	"strconv"
	"strings"
	"time"
)

// TurntablePrize is one segment of the lucky-draw wheel. A label beginning
// with "+" followed by an integer marks a bonus-point prize.
type TurntablePrize struct {
	TenantID  string    `db:"tenant_id" json:"-"`
	ID        string    `db:"id" json:"id"`
	Label     string    `db:"label" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BonusPoints parses the prize label and returns the bonus amount, or zero
// when the label is not a bonus prize ("谢谢参与", free-text prizes, malformed
// numbers).
func (p TurntablePrize) BonusPoints() int {
	label := strings.TrimSpace(p.Label)
	if !strings.HasPrefix(label, "+") {
		return 0
	}
	digits := label[1:]
	if idx := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); idx >= 0 {
		digits = digits[:idx]
	}
	points, err := strconv.Atoi(digits)
	if err != nil || points <= 0 {
		return 0
	}
	return points
}
