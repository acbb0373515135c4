package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// DataRepository performs whole-tenant bulk operations: the clear-all reset
// and the snapshot restore. Both touch every entity table and therefore run
// as single transactions.
type DataRepository struct {
	db *sqlx.DB
}

// NewDataRepository constructs the repository.
func NewDataRepository(db *sqlx.DB) *DataRepository {
	return &DataRepository{db: db}
}

var tenantTables = []string{"records", "students", "groups", "rewards", "turntable_prizes", "settings"}

// Reset wipes every entity the tenant owns, including audit history and
// settings. The tenant account itself is untouched.
func (r *DataRepository) Reset(ctx context.Context, tenantID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	if err := clearTenant(ctx, tx, tenantID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset tx: %w", err)
	}
	return nil
}

// Import replaces the tenant's entire dataset with the snapshot contents.
// Existing data is cleared first so a failed restore never leaves a mix of
// old and new rows.
func (r *DataRepository) Import(ctx context.Context, tenantID string, snapshot *models.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	if err := clearTenant(ctx, tx, tenantID); err != nil {
		_ = tx.Rollback()
		return err
	}

	now := time.Now().UTC()

	const insertStudent = `INSERT INTO students (tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at)
VALUES (:tenant_id, :id, :name, :group_id, :points, :total_earned, :total_deducted, :created_at, :updated_at)`
	for i := range snapshot.Students {
		snapshot.Students[i].TenantID = tenantID
		if snapshot.Students[i].CreatedAt.IsZero() {
			snapshot.Students[i].CreatedAt = now
		}
		snapshot.Students[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertStudent, snapshot.Students[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import student %s: %w", snapshot.Students[i].ID, err)
		}
	}

	const insertGroup = `INSERT INTO groups (tenant_id, id, name, created_at) VALUES (:tenant_id, :id, :name, :created_at)`
	for i := range snapshot.Groups {
		snapshot.Groups[i].TenantID = tenantID
		if snapshot.Groups[i].CreatedAt.IsZero() {
			snapshot.Groups[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insertGroup, snapshot.Groups[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import group %s: %w", snapshot.Groups[i].ID, err)
		}
	}

	const insertReward = `INSERT INTO rewards (tenant_id, id, name, cost, created_at) VALUES (:tenant_id, :id, :name, :cost, :created_at)`
	for i := range snapshot.Rewards {
		snapshot.Rewards[i].TenantID = tenantID
		if snapshot.Rewards[i].CreatedAt.IsZero() {
			snapshot.Rewards[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insertReward, snapshot.Rewards[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import reward %s: %w", snapshot.Rewards[i].ID, err)
		}
	}

	const insertPrize = `INSERT INTO turntable_prizes (tenant_id, id, label, created_at) VALUES (:tenant_id, :id, :label, :created_at)`
	for i := range snapshot.TurntablePrizes {
		snapshot.TurntablePrizes[i].TenantID = tenantID
		if snapshot.TurntablePrizes[i].CreatedAt.IsZero() {
			snapshot.TurntablePrizes[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insertPrize, snapshot.TurntablePrizes[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import prize %s: %w", snapshot.TurntablePrizes[i].ID, err)
		}
	}

	const insertRecord = `INSERT INTO records (id, tenant_id, time, student_id, student_name, change, reason, category, final_points, created_at)
VALUES (:id, :tenant_id, :time, :student_id, :student_name, :change, :reason, :category, :final_points, :created_at)`
	for i := range snapshot.Records {
		snapshot.Records[i].TenantID = tenantID
		if snapshot.Records[i].CreatedAt.IsZero() {
			snapshot.Records[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, insertRecord, snapshot.Records[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import record %s: %w", snapshot.Records[i].ID, err)
		}
	}

	const insertSetting = `INSERT INTO settings (tenant_id, key, value) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insertSetting, tenantID, models.SettingTurntableCost, strconv.Itoa(snapshot.TurntableCost)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("import turntable cost: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

func clearTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	for _, table := range tenantTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE tenant_id = $1`, table), tenantID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
