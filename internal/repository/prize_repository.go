package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// PrizeRepository manages persistence for turntable prizes.
type PrizeRepository struct {
	db *sqlx.DB
}

// NewPrizeRepository constructs the repository.
func NewPrizeRepository(db *sqlx.DB) *PrizeRepository {
	return &PrizeRepository{db: db}
}

// List returns the tenant's prizes in insertion order.
func (r *PrizeRepository) List(ctx context.Context, tenantID string) ([]models.TurntablePrize, error) {
	const query = `SELECT tenant_id, id, label, created_at FROM turntable_prizes WHERE tenant_id = $1 ORDER BY created_at`
	var prizes []models.TurntablePrize
	if err := r.db.SelectContext(ctx, &prizes, query, tenantID); err != nil {
		return nil, fmt.Errorf("list prizes: %w", err)
	}
	return prizes, nil
}

// Create inserts a new prize.
func (r *PrizeRepository) Create(ctx context.Context, prize *models.TurntablePrize) error {
	if prize.CreatedAt.IsZero() {
		prize.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO turntable_prizes (tenant_id, id, label, created_at) VALUES (:tenant_id, :id, :label, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, prize); err != nil {
		return fmt.Errorf("create prize: %w", err)
	}
	return nil
}

// Update changes a prize label. Returns sql.ErrNoRows when absent.
func (r *PrizeRepository) Update(ctx context.Context, tenantID, id, label string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE turntable_prizes SET label = $1 WHERE tenant_id = $2 AND id = $3`, label, tenantID, id)
	if err != nil {
		return fmt.Errorf("update prize: %w", err)
	}
	return requireRow(result)
}

// Delete removes a prize.
func (r *PrizeRepository) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turntable_prizes WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete prize: %w", err)
	}
	return nil
}
