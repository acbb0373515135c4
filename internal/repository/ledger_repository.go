package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
	appErrors "github.com/yuehan-qin/classpoints-api/pkg/errors"
)

// LedgerRepository is the transaction engine behind every point mutation.
// Each public method is one atomic unit of work: the student row is locked,
// balance and lifetime counters are recomputed, and exactly one audit record
// is appended per affected student. Either everything in the unit commits or
// nothing does.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository constructs the repository.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// RedeemResult reports a completed reward redemption.
type RedeemResult struct {
	RewardName string `json:"reward_name"`
	Cost       int    `json:"cost"`
	NewBalance int    `json:"new_balance"`
}

// ledgerStudent is the row projection read under the row lock.
type ledgerStudent struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Points        int    `db:"points"`
	TotalEarned   int    `db:"total_earned"`
	TotalDeducted int    `db:"total_deducted"`
}

// The FOR UPDATE lock serialises concurrent deltas per student row so two
// in-flight mutations cannot read the same stale balance.
const lockStudentQuery = `SELECT id, name, points, total_earned, total_deducted FROM students WHERE tenant_id = $1 AND id = $2 FOR UPDATE`

// Apply mutates a single student's balance inside its own transaction and
// returns the new balance. A missing student surfaces as sql.ErrNoRows with
// no side effects.
func (r *LedgerRepository) Apply(ctx context.Context, tenantID, studentID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin ledger tx: %w", err)
	}
	newBalance, err := r.applyDelta(ctx, tx, tenantID, studentID, delta, reason, category)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ledger tx: %w", err)
	}
	return newBalance, nil
}

// ApplyToGroup applies the same delta to every member of a group within one
// transaction. An empty group yields ErrEmptyTarget and nothing is written.
// Returns the number of students updated.
func (r *LedgerRepository) ApplyToGroup(ctx context.Context, tenantID, groupID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	return r.fanOut(ctx, tenantID, delta, reason, category,
		`SELECT id FROM students WHERE tenant_id = $1 AND group_id = $2 ORDER BY id`, tenantID, groupID)
}

// ApplyToClass applies the same delta to every student of the tenant within
// one transaction. An empty roster yields ErrEmptyTarget.
func (r *LedgerRepository) ApplyToClass(ctx context.Context, tenantID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	return r.fanOut(ctx, tenantID, delta, reason, category,
		`SELECT id FROM students WHERE tenant_id = $1 ORDER BY id`, tenantID)
}

func (r *LedgerRepository) fanOut(ctx context.Context, tenantID string, delta int, reason string, category models.ReasonCategory, memberQuery string, args ...interface{}) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin fan-out tx: %w", err)
	}

	var memberIDs []string
	if err := tx.SelectContext(ctx, &memberIDs, memberQuery, args...); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("resolve fan-out members: %w", err)
	}
	if len(memberIDs) == 0 {
		_ = tx.Rollback()
		return 0, appErrors.ErrEmptyTarget
	}

	for _, studentID := range memberIDs {
		if _, err := r.applyDelta(ctx, tx, tenantID, studentID, delta, reason, category); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit fan-out tx: %w", err)
	}
	return len(memberIDs), nil
}

// Redeem debits a reward's cost from the student after re-checking
// affordability under the row lock. The front-end performs the same check
// for UX only; this is the authoritative one, so a stale client can never
// drive a balance below the reward cost. The debit is exempt from the
// lifetime deduction counter.
func (r *LedgerRepository) Redeem(ctx context.Context, tenantID, studentID, rewardID string) (*RedeemResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin redeem tx: %w", err)
	}

	var reward models.Reward
	if err := tx.GetContext(ctx, &reward, `SELECT id, name, cost FROM rewards WHERE tenant_id = $1 AND id = $2`, tenantID, rewardID); err != nil {
		_ = tx.Rollback()
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reward not found")
		}
		return nil, fmt.Errorf("load reward: %w", err)
	}

	var student ledgerStudent
	if err := tx.GetContext(ctx, &student, lockStudentQuery, tenantID, studentID); err != nil {
		_ = tx.Rollback()
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student.Points < reward.Cost {
		_ = tx.Rollback()
		return nil, appErrors.ErrInsufficientBalance
	}

	reason := fmt.Sprintf("兑换: %s", reward.Name)
	newBalance, err := r.applyDelta(ctx, tx, tenantID, studentID, -reward.Cost, reason, models.CategoryRedemption)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit redeem tx: %w", err)
	}
	return &RedeemResult{RewardName: reward.Name, Cost: reward.Cost, NewBalance: newBalance}, nil
}

// applyDelta performs the read-modify-write plus audit append for one
// student within the caller's transaction. The re-read under FOR UPDATE
// observes the transaction's own prior writes, so repeated calls for the
// same student inside one unit of work compose correctly.
func (r *LedgerRepository) applyDelta(ctx context.Context, tx *sqlx.Tx, tenantID, studentID string, delta int, reason string, category models.ReasonCategory) (int, error) {
	var student ledgerStudent
	if err := tx.GetContext(ctx, &student, lockStudentQuery, tenantID, studentID); err != nil {
		return 0, err
	}

	newBalance := student.Points + delta
	earned := student.TotalEarned
	deducted := student.TotalDeducted
	if delta > 0 {
		earned += delta
	}
	if delta < 0 && category.Punitive() {
		deducted += -delta
	}

	now := time.Now()
	const update = `UPDATE students SET points = $1, total_earned = $2, total_deducted = $3, updated_at = $4 WHERE tenant_id = $5 AND id = $6`
	if _, err := tx.ExecContext(ctx, update, newBalance, earned, deducted, now.UTC(), tenantID, studentID); err != nil {
		return 0, fmt.Errorf("update student points: %w", err)
	}

	record := models.Record{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Time:        now.Format(models.RecordTimeLayout),
		StudentID:   student.ID,
		StudentName: student.Name,
		Change:      models.FormatChange(delta),
		Reason:      reason,
		Category:    category,
		FinalPoints: newBalance,
		CreatedAt:   now.UTC(),
	}
	const insert = `INSERT INTO records (id, tenant_id, time, student_id, student_name, change, reason, category, final_points, created_at)
VALUES (:id, :tenant_id, :time, :student_id, :student_name, :change, :reason, :category, :final_points, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, record); err != nil {
		return 0, fmt.Errorf("append audit record: %w", err)
	}

	return newBalance, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
