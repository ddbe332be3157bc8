package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/domain/settings"
)

// SettingsRepo implements settings.Repository over a single-row table.
type SettingsRepo struct {
	txManager *TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *TxManager) *SettingsRepo {
	return &SettingsRepo{txManager: txManager}
}

// Get returns the settings row.
func (r *SettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	const query = `
		SELECT low_stock_threshold, updated_at, COALESCE(updated_by, '') AS updated_by
		FROM app_settings
		WHERE id = 1
	`

	var s settings.Settings
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &s, query); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("settings", "singleton")
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Save upserts the settings row.
func (r *SettingsRepo) Save(ctx context.Context, s *settings.Settings) error {
	const query = `
		INSERT INTO app_settings (id, low_stock_threshold, updated_at, updated_by)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, query, s.LowStockThreshold, s.UpdatedAt, s.UpdatedBy); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
