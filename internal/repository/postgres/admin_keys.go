package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

type adminKeyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminKeyRepository creates a new admin key repository
func NewAdminKeyRepository(db *sql.DB, logger *zap.Logger) *adminKeyRepository {
	return &adminKeyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *adminKeyRepository) ListActive(ctx context.Context) ([]*domain.AdminKey, error) {
	query := `
		SELECT id, name, key_hash, is_active, created_at
		FROM admin_api_keys
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list admin keys", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var keys []*domain.AdminKey
	for rows.Next() {
		var k domain.AdminKey
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyHash, &k.IsActive, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (r *adminKeyRepository) Create(ctx context.Context, key *domain.AdminKey) error {
	query := `
		INSERT INTO admin_api_keys (id, name, key_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}

	if _, err := r.db.ExecContext(ctx, query, key.ID, key.Name, key.KeyHash, key.IsActive, key.CreatedAt); err != nil {
		r.logger.Error("Failed to create admin key", zap.Error(err))
		return err
	}
	return nil
}
