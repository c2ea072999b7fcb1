package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

func protein() domain.Product {
	return domain.Product{
		ID:      "prod-1",
		Name:    "Whey Protein",
		Price:   4500,
		InStock: true,
	}
}

func shirt() domain.Product {
	return domain.Product{
		ID:    "prod-2",
		Name:  "Training Shirt",
		Price: 1800,
		Variants: []domain.ProductVariant{
			{ID: "v1", Name: "size", Value: "M"},
			{ID: "v2", Name: "size", Value: "L"},
			{ID: "v3", Name: "color", Value: "black"},
		},
		VariantPrices: map[string]float64{
			"black-L": 2000,
		},
		InStock: true,
	}
}

func TestAddAppendsNewItem(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 2, nil)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, "prod-1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 4500.0, c.Items[0].Price)
	assert.Equal(t, 9000.0, c.Total)
	assert.Equal(t, 2, c.ItemsCount)
}

func TestAddMergesSameSlot(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 1, nil)
	c = Add(c, protein(), 3, nil)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 18000.0, c.Total)
	assert.Equal(t, 4, c.ItemsCount)
}

func TestAddDifferentVariantsAreSeparateSlots(t *testing.T) {
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"size": "M", "color": "black"})
	c = Add(c, shirt(), 1, map[string]string{"size": "L", "color": "black"})

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.ItemsCount)
}

func TestAddVariantKeyOrderInsensitive(t *testing.T) {
	// Same selection with different map construction order must merge
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"size": "M", "color": "black"})
	c = Add(c, shirt(), 1, map[string]string{"color": "black", "size": "M"})

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddResolvesVariantPriceOverride(t *testing.T) {
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"color": "black", "size": "L"})

	assert.Equal(t, 2000.0, c.Items[0].Price)
	assert.Equal(t, 2000.0, c.Total)
}

func TestAddFallsBackToBasePrice(t *testing.T) {
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"color": "black", "size": "M"})

	assert.Equal(t, 1800.0, c.Items[0].Price)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 0, nil)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c = Add(domain.Cart{}, protein(), -5, nil)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemoveDropsAllSlotsOfProduct(t *testing.T) {
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"size": "M"})
	c = Add(c, shirt(), 1, map[string]string{"size": "L"})
	c = Add(c, protein(), 1, nil)

	c = Remove(c, "prod-2")

	assert.Len(t, c.Items, 1)
	assert.Equal(t, "prod-1", c.Items[0].ProductID)
	assert.Equal(t, 4500.0, c.Total)
	assert.Equal(t, 1, c.ItemsCount)
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 2, nil)
	before := c

	c = Remove(c, "missing")

	assert.Equal(t, before.Total, c.Total)
	assert.Equal(t, before.ItemsCount, c.ItemsCount)
	assert.Len(t, c.Items, 1)
}

func TestSetQuantityAppliesAcrossSlots(t *testing.T) {
	c := Add(domain.Cart{}, shirt(), 1, map[string]string{"size": "M"})
	c = Add(c, shirt(), 2, map[string]string{"size": "L"})

	c = SetQuantity(c, "prod-2", 5)

	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.Items[1].Quantity)
	assert.Equal(t, 10, c.ItemsCount)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 3, nil)

	c = SetQuantity(c, "prod-1", 0)

	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
	assert.Equal(t, 0, c.ItemsCount)
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 3, nil)

	c = SetQuantity(c, "prod-1", -1)

	assert.Empty(t, c.Items)
}

func TestClear(t *testing.T) {
	c := Add(domain.Cart{}, protein(), 3, nil)
	c = Add(c, shirt(), 1, map[string]string{"size": "M"})

	c = Clear(c)

	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total)
	assert.Equal(t, 0, c.ItemsCount)
}

func TestTotalsAlwaysDerivedFromItems(t *testing.T) {
	// A cart arriving with bogus derived fields is corrected by any mutation
	c := domain.Cart{
		Items: []domain.CartItem{
			{ProductID: "prod-1", Product: protein(), Quantity: 2, Price: 4500},
		},
		Total:      99999,
		ItemsCount: 42,
	}

	c = SetQuantity(c, "prod-1", 2)

	assert.Equal(t, 9000.0, c.Total)
	assert.Equal(t, 2, c.ItemsCount)
}
