package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

// The store configuration lives in a single JSONB row, same shape the
// storefront keeps in its one settings document.
const settingsRowID = "store_config"

type settingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB, logger *zap.Logger) *settingsRepository {
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.StoreSettings, error) {
	query := `SELECT data FROM store_settings WHERE id = $1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, settingsRowID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "store settings", ID: settingsRowID}
	}
	if err != nil {
		r.logger.Error("Failed to get store settings", zap.Error(err))
		return nil, err
	}

	var settings domain.StoreSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		r.logger.Error("Failed to decode store settings", zap.Error(err))
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *domain.StoreSettings) error {
	query := `
		INSERT INTO store_settings (id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, settingsRowID, data, time.Now()); err != nil {
		r.logger.Error("Failed to update store settings", zap.Error(err))
		return err
	}
	return nil
}
