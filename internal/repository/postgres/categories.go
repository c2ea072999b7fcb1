package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, image, parent_id, is_active
		FROM categories
		WHERE is_active = true
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		var description, image, parentID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &image, &parentID, &c.IsActive); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.Image = image.String
		if parentID.Valid {
			c.ParentID = &parentID.String
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
