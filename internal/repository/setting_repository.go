package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingRepository stores per-tenant key/value settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository constructs the repository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the setting value. A missing key surfaces sql.ErrNoRows so the
// caller can fall back to a default.
func (r *SettingRepository) Get(ctx context.Context, tenantID, key string) (string, error) {
	var value string
	if err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE tenant_id = $1 AND key = $2`, tenantID, key); err != nil {
		return "", err
	}
	return value, nil
}

// Upsert writes the setting value, inserting or overwriting as needed.
func (r *SettingRepository) Upsert(ctx context.Context, tenantID, key, value string) error {
	const query = `INSERT INTO settings (tenant_id, key, value) VALUES ($1, $2, $3)
ON CONFLICT (tenant_id, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, tenantID, key, value); err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
