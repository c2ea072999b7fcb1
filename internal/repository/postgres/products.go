package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository"
	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `
	id, name, description, price, original_price, images, category, brand,
	in_stock, stock_quantity, variants, variant_prices,
	is_new, is_best_seller, is_featured, slug, created_at, updated_at
`

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Featured {
		query += " AND is_featured = true"
	}
	if filter.New {
		query += " AND is_new = true"
	}
	if filter.BestSeller {
		query += " AND is_best_seller = true"
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryProducts(ctx, query, args...)
}

func (r *productRepository) Search(ctx context.Context, q string, limit int) ([]*domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR brand ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryProducts(ctx, query, q, limit)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var originalPrice sql.NullFloat64
	var slug sql.NullString
	var imagesJSON, variantsJSON, variantPricesJSON []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&originalPrice,
		&imagesJSON,
		&p.Category,
		&p.Brand,
		&p.InStock,
		&p.StockQuantity,
		&variantsJSON,
		&variantPricesJSON,
		&p.IsNew,
		&p.IsBestSeller,
		&p.IsFeatured,
		&slug,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Float64
	}
	if slug.Valid {
		p.Slug = slug.String
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal product images: %w", err)
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if len(variantsJSON) > 0 {
		if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
			return nil, fmt.Errorf("unmarshal product variants: %w", err)
		}
	}
	if len(variantPricesJSON) > 0 {
		if err := json.Unmarshal(variantPricesJSON, &p.VariantPrices); err != nil {
			return nil, fmt.Errorf("unmarshal variant prices: %w", err)
		}
	}

	return &p, nil
}
