package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

// ErrCorruptSnapshot is returned by Restore when the stored payload is not
// structured data at all. The caller discards the stored value and starts
// from an empty cart; the error never propagates past the store's load path.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Loose mirror of the persisted payload. Items are kept as raw messages so
// one malformed item drops only that item, not the whole cart.
type rawSnapshot struct {
	Items []json.RawMessage `json:"items"`
}

type rawItem struct {
	ProductID        string            `json:"productId"`
	Product          *rawProduct       `json:"product"`
	Quantity         *float64          `json:"quantity"`
	SelectedVariants map[string]string `json:"selectedVariants"`
	Price            *float64          `json:"price"`
}

type rawProduct struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Price         *float64                `json:"price"`
	OriginalPrice *float64                `json:"originalPrice"`
	Images        []string                `json:"images"`
	Category      string                  `json:"category"`
	Brand         string                  `json:"brand"`
	InStock       *bool                   `json:"inStock"`
	StockQuantity *float64                `json:"stockQuantity"`
	Variants      []domain.ProductVariant `json:"variants"`
	VariantPrices map[string]float64      `json:"variantPrices"`
	Slug          string                  `json:"slug"`
	CreatedAt     *time.Time              `json:"createdAt"`
	UpdatedAt     *time.Time              `json:"updatedAt"`
}

// Restore validates and sanitizes a persisted cart payload. A candidate item
// is kept only if it carries a non-empty productId, an embedded product
// object, a numeric quantity > 0 and a numeric price; missing nested product
// fields are back-filled with safe defaults instead of rejecting the item.
// Total and item count are recomputed from the surviving items.
func Restore(data []byte) (domain.Cart, error) {
	var snap rawSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Cart{Items: []domain.CartItem{}}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	items := make([]domain.CartItem, 0, len(snap.Items))
	for _, raw := range snap.Items {
		var item rawItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if item.ProductID == "" || item.Product == nil {
			continue
		}
		if item.Quantity == nil || *item.Quantity <= 0 {
			continue
		}
		if item.Price == nil {
			continue
		}

		quantity := int(*item.Quantity)
		if quantity < 1 {
			quantity = 1
		}

		items = append(items, domain.CartItem{
			ProductID:        item.ProductID,
			Product:          sanitizeProduct(item.Product),
			Quantity:         quantity,
			SelectedVariants: item.SelectedVariants,
			Price:            *item.Price,
		})
	}

	return rebuild(items), nil
}

func sanitizeProduct(p *rawProduct) domain.Product {
	now := time.Now()

	product := domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Images:        p.Images,
		Category:      p.Category,
		Brand:         p.Brand,
		InStock:       true,
		Variants:      p.Variants,
		VariantPrices: p.VariantPrices,
		OriginalPrice: p.OriginalPrice,
		Slug:          p.Slug,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Name == "" {
		product.Name = "Product"
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Images == nil {
		product.Images = []string{}
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if p.StockQuantity != nil {
		product.StockQuantity = int(*p.StockQuantity)
	}
	if p.CreatedAt != nil {
		product.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		product.UpdatedAt = *p.UpdatedAt
	}
	return product
}
