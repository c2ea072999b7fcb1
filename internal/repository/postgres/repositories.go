package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/repository"
)

// NewRepositories creates all repository implementations
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:    NewProductRepository(db, logger),
		Order:      NewOrderRepository(db, logger),
		OrderEvent: NewOrderEventRepository(db, logger),
		Settings:   NewSettingsRepository(db, logger),
		Banner:     NewBannerRepository(db, logger),
		Category:   NewCategoryRepository(db, logger),
		AdminKey:   NewAdminKeyRepository(db, logger),
	}
}
