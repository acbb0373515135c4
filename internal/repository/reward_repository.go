package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yuehan-qin/classpoints-api/internal/models"
)

// RewardRepository manages persistence for the reward shop.
type RewardRepository struct {
	db *sqlx.DB
}

// NewRewardRepository constructs the repository.
func NewRewardRepository(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// List returns the tenant's rewards ordered by cost.
func (r *RewardRepository) List(ctx context.Context, tenantID string) ([]models.Reward, error) {
	const query = `SELECT tenant_id, id, name, cost, created_at FROM rewards WHERE tenant_id = $1 ORDER BY cost`
	var rewards []models.Reward
	if err := r.db.SelectContext(ctx, &rewards, query, tenantID); err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return rewards, nil
}

// FindByID fetches one reward.
func (r *RewardRepository) FindByID(ctx context.Context, tenantID, id string) (*models.Reward, error) {
	const query = `SELECT tenant_id, id, name, cost, created_at FROM rewards WHERE tenant_id = $1 AND id = $2`
	var reward models.Reward
	if err := r.db.GetContext(ctx, &reward, query, tenantID, id); err != nil {
		return nil, err
	}
	return &reward, nil
}

// Create inserts a new reward.
func (r *RewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO rewards (tenant_id, id, name, cost, created_at) VALUES (:tenant_id, :id, :name, :cost, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reward); err != nil {
		return fmt.Errorf("create reward: %w", err)
	}
	return nil
}

// Update modifies a reward's name and cost. Returns sql.ErrNoRows when the
// reward does not exist for the tenant.
func (r *RewardRepository) Update(ctx context.Context, tenantID, id, name string, cost int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rewards SET name = $1, cost = $2 WHERE tenant_id = $3 AND id = $4`, name, cost, tenantID, id)
	if err != nil {
		return fmt.Errorf("update reward: %w", err)
	}
	return requireRow(result)
}

// Delete removes a reward.
func (r *RewardRepository) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rewards WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("delete reward: %w", err)
	}
	return nil
}
