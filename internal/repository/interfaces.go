package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kehilianouar/gymdada-api/internal/domain"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Category   string
	Featured   bool
	New        bool
	BestSeller bool
	Limit      int
	Offset     int
}

// ProductRepository defines catalog read access
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Product, error)
}

// OrderRepository is the order sink: it durably stores submitted orders and
// serves them back for the order-success page and the back office.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// OrderEventRepository defines order audit event access
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// SettingsRepository defines store settings access
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Update(ctx context.Context, settings *domain.StoreSettings) error
}

// BannerRepository defines banner read access
type BannerRepository interface {
	ListActive(ctx context.Context) ([]*domain.Banner, error)
}

// CategoryRepository defines category read access
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*domain.Category, error)
}

// AdminKeyRepository defines back-office API key access
type AdminKeyRepository interface {
	ListActive(ctx context.Context) ([]*domain.AdminKey, error)
	Create(ctx context.Context, key *domain.AdminKey) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Product    ProductRepository
	Order      OrderRepository
	OrderEvent OrderEventRepository
	Settings   SettingsRepository
	Banner     BannerRepository
	Category   CategoryRepository
	AdminKey   AdminKeyRepository
}
