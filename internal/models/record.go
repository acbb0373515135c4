package models

import "time"

// RecordTimeLayout is the human-readable timestamp stored on audit records.
const RecordTimeLayout = "2006-01-02 15:04:05"

// Record is one append-only audit entry for a ledger mutation. It snapshots
// the student's ID and name rather than referencing the row, so history
// survives student deletion. Records are never updated; the only bulk purge
// is the explicit clear-all data reset.
type Record struct {
	ID          string         `db:"id" json:"id"`
	TenantID    string         `db:"tenant_id" json:"-"`
	Time        string         `db:"time" json:"time"`
	StudentID   string         `db:"student_id" json:"studentId"`
	StudentName string         `db:"student_name" json:"studentName"`
	Change      string         `db:"change" json:"change"`
	Reason      string         `db:"reason" json:"reason"`
	Category    ReasonCategory `db:"category" json:"category"`
	FinalPoints int            `db:"final_points" json:"finalPoints"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// RecordFilter narrows audit history listings.
type RecordFilter struct {
	StudentID string
	Page      int
	PageSize  int
}
