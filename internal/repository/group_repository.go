package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// GroupRepository manages persistence for student groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs the repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns the tenant's groups ordered by name.
func (r *GroupRepository) List(ctx context.Context, tenantID string) ([]models.Group, error) {
	const query = `SELECT tenant_id, id, name, created_at FROM groups WHERE tenant_id = $1 ORDER BY name`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, tenantID); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// FindByID fetches one group.
func (r *GroupRepository) FindByID(ctx context.Context, tenantID, id string) (*models.Group, error) {
	const query = `SELECT tenant_id, id, name, created_at FROM groups WHERE tenant_id = $1 AND id = $2`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, tenantID, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// Create inserts a new group.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO groups (tenant_id, id, name, created_at) VALUES (:tenant_id, :id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Rename updates the group name. Returns sql.ErrNoRows when absent.
func (r *GroupRepository) Rename(ctx context.Context, tenantID, id, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET name = $1 WHERE tenant_id = $2 AND id = $3`, name, tenantID, id)
	if err != nil {
		return fmt.Errorf("rename group: %w", err)
	}
	return requireRow(result)
}

// Delete removes a group and ungroups its members in one transaction. The
// two statements are kept explicit rather than relying on cascade rules so
// the dependent-table cleanup stays visible.
func (r *GroupRepository) Delete(ctx context.Context, tenantID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin group delete tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE students SET group_id = '' WHERE tenant_id = $1 AND group_id = $2`, tenantID, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("ungroup members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete group: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit group delete tx: %w", err)
	}
	return nil
}
