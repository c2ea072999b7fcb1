package cart

import (
	"github.com/kehilianouar/gymdada-api/internal/domain"
)

// Pure cart transitions. Every function takes the previous cart value and
// returns the next one with Total and ItemsCount recomputed from the item
// list, so the derived fields can never drift.

// Add merges quantity into an existing slot (same productId + same
// selected-variants serialization) or appends a new line item with the unit
// price resolved at add time. The product is embedded as a snapshot so the
// line stays valid if the catalog record later changes.
func Add(c domain.Cart, product domain.Product, quantity int, selected map[string]string) domain.Cart {
	if quantity < 1 {
		quantity = 1
	}
	key := domain.VariantKey(selected)

	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)

	merged := false
	for i := range items {
		if items[i].ProductID == product.ID && domain.VariantKey(items[i].SelectedVariants) == key {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			ProductID:        product.ID,
			Product:          product,
			Quantity:         quantity,
			SelectedVariants: selected,
			Price:            product.UnitPrice(selected),
		})
	}

	return rebuild(items)
}

// Remove drops every line item with the given productId, regardless of
// variant selection. No-op if the product is not in the cart.
func Remove(c domain.Cart, productID string) domain.Cart {
	items := make([]domain.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return rebuild(items)
}

// SetQuantity sets the quantity on every line item with the given productId.
// Like Remove it scopes by productId only, across variant slots. A quantity
// of zero or less behaves as Remove.
func SetQuantity(c domain.Cart, productID string, quantity int) domain.Cart {
	if quantity <= 0 {
		return Remove(c, productID)
	}

	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return rebuild(items)
}

// Clear returns an empty cart
func Clear(domain.Cart) domain.Cart {
	return domain.Cart{Items: []domain.CartItem{}}
}

func rebuild(items []domain.CartItem) domain.Cart {
	var total float64
	var count int
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	return domain.Cart{Items: items, Total: total, ItemsCount: count}
}
