package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// StudentRepository manages persistence for the student roster. All reads
// and writes are scoped by tenant; aggregate fields are only ever mutated
// through the LedgerRepository.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns the tenant's students ordered by name.
func (r *StudentRepository) List(ctx context.Context, tenantID string) ([]models.Student, error) {
	const query = `SELECT tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at
FROM students WHERE tenant_id = $1 ORDER BY name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, tenantID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches one student.
func (r *StudentRepository) FindByID(ctx context.Context, tenantID, id string) (*models.Student, error) {
	const query = `SELECT tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at
FROM students WHERE tenant_id = $1 AND id = $2`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, tenantID, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student with a zeroed ledger. Duplicate IDs surface
// the driver's unique-violation error for the service to translate.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at)
VALUES (:tenant_id, :id, :name, :group_id, :points, :total_earned, :total_deducted, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies a student's name and group assignment. Returns
// sql.ErrNoRows when the student does not exist for the tenant.
func (r *StudentRepository) Update(ctx context.Context, tenantID, id, name, groupID string) error {
	const query = `UPDATE students SET name = $1, group_id = $2, updated_at = $3 WHERE tenant_id = $4 AND id = $5`
	result, err := r.db.ExecContext(ctx, query, name, groupID, time.Now().UTC(), tenantID, id)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRow(result)
}

// Delete removes a student. Audit records referencing the student are kept;
// they snapshot the name and ID.
func (r *StudentRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireRow(result)
}

// ReplaceAll swaps the tenant's entire roster for the imported one inside a
// single transaction.
func (r *StudentRepository) ReplaceAll(ctx context.Context, tenantID string, students []models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE tenant_id = $1`, tenantID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear students: %w", err)
	}
	now := time.Now().UTC()
	const insert = `INSERT INTO students (tenant_id, id, name, group_id, points, total_earned, total_deducted, created_at, updated_at)
VALUES (:tenant_id, :id, :name, :group_id, :points, :total_earned, :total_deducted, :created_at, :updated_at)`
	for i := range students {
		students[i].TenantID = tenantID
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, students[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import student %s: %w", students[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

// SetGroupMembers reassigns group membership: members of the group are
// cleared first, then the listed students are attached, all in one tx.
func (r *StudentRepository) SetGroupMembers(ctx context.Context, tenantID, groupID string, memberIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin membership tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE students SET group_id = '' WHERE tenant_id = $1 AND group_id = $2`, tenantID, groupID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear group members: %w", err)
	}
	if len(memberIDs) > 0 {
		const assign = `UPDATE students SET group_id = $1 WHERE tenant_id = $2 AND id = ANY($3)`
		if _, err := tx.ExecContext(ctx, assign, groupID, tenantID, pq.Array(memberIDs)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("assign group members: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit membership tx: %w", err)
	}
	return nil
}
