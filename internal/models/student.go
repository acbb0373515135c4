package models

import "time"

// Student is a roster member whose point balance the ledger mutates. IDs are
// caller-supplied (student numbers) and unique per tenant only. The balance
// is signed and may go negative; the lifetime counters only ever grow.
type Student struct {
	TenantID       string    `db:"tenant_id" json:"-"`
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	GroupID        string    `db:"group_id" json:"group"`
	Points         int       `db:"points" json:"points"`
	TotalEarned    int       `db:"total_earned" json:"totalEarnedPoints"`
	TotalDeducted  int       `db:"total_deducted" json:"totalDeductions"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// StudentImport is one row of a bulk roster import. Aggregates are seeded
// from the payload; total earned falls back to the balance when absent so a
// plain name/points sheet still produces sane lifetime counters.
type StudentImport struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	GroupID       string `json:"group"`
	Points        int    `json:"points"`
	TotalEarned   int    `json:"totalEarnedPoints"`
	TotalDeducted int    `json:"totalDeductions"`
}
