package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// RecordRepository reads the append-only audit history. Inserts only happen
// through the LedgerRepository (live mutations) and the DataRepository
// (snapshot import); this repository never writes.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository constructs the repository.
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

const recordColumns = `id, tenant_id, time, student_id, student_name, change, reason, category, final_points, created_at`

// List returns one page of records, newest first, plus the total count for
// pagination.
func (r *RecordRepository) List(ctx context.Context, tenantID string, filter models.RecordFilter) ([]models.Record, int, error) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if filter.StudentID != "" {
		where += ` AND student_id = $2`
		args = append(args, filter.StudentID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM records `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf(`SELECT %s FROM records %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		recordColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var records []models.Record
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	return records, total, nil
}

// ListAll returns the tenant's full history, newest first. Used by the
// snapshot payload and file exports.
func (r *RecordRepository) ListAll(ctx context.Context, tenantID string) ([]models.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE tenant_id = $1 ORDER BY created_at DESC, id DESC`, recordColumns)
	var records []models.Record
	if err := r.db.SelectContext(ctx, &records, query, tenantID); err != nil {
		return nil, fmt.Errorf("list all records: %w", err)
	}
	return records, nil
}
