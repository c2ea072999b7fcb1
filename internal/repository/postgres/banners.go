package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

type bannerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBannerRepository creates a new banner repository
func NewBannerRepository(db *sql.DB, logger *zap.Logger) *bannerRepository {
	return &bannerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *bannerRepository) ListActive(ctx context.Context) ([]*domain.Banner, error) {
	query := `
		SELECT id, title, description, image, link, is_active, position
		FROM banners
		WHERE is_active = true
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list banners", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var banners []*domain.Banner
	for rows.Next() {
		var b domain.Banner
		var description, link sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &description, &b.Image, &link, &b.IsActive, &b.Position); err != nil {
			return nil, err
		}
		b.Description = description.String
		b.Link = link.String
		banners = append(banners, &b)
	}
	return banners, rows.Err()
}
