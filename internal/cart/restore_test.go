package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kehilianouar/gymdada-api/internal/domain"
)

func TestRestoreRoundTrip(t *testing.T) {
	original := Add(domain.Cart{}, protein(), 2, nil)
	original = Add(original, shirt(), 1, map[string]string{"size": "L", "color": "black"})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := Restore(data)
	require.NoError(t, err)

	assert.Len(t, restored.Items, 2)
	assert.Equal(t, original.Total, restored.Total)
	assert.Equal(t, original.ItemsCount, restored.ItemsCount)
	assert.Equal(t, original.Items[0].ProductID, restored.Items[0].ProductID)
	assert.Equal(t, original.Items[1].SelectedVariants, restored.Items[1].SelectedVariants)
}

func TestRestoreRejectsNonJSON(t *testing.T) {
	restored, err := Restore([]byte("not json at all"))

	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.Empty(t, restored.Items)
	assert.Equal(t, 0.0, restored.Total)
}

func TestRestoreDropsOnlyInvalidItems(t *testing.T) {
	payload := `{
		"items": [
			{"productId": "good", "product": {"id": "good", "name": "Creatine", "price": 2500}, "quantity": 2, "price": 2500},
			{"productId": "", "product": {"id": "x"}, "quantity": 1, "price": 100},
			{"productId": "no-product", "quantity": 1, "price": 100},
			{"productId": "zero-qty", "product": {"id": "z"}, "quantity": 0, "price": 100},
			{"productId": "no-price", "product": {"id": "n"}, "quantity": 1},
			{"productId": "bad-qty", "product": {"id": "b"}, "quantity": "two", "price": 100}
		],
		"total": 123456,
		"itemsCount": 99
	}`

	restored, err := Restore([]byte(payload))
	require.NoError(t, err)

	require.Len(t, restored.Items, 1)
	assert.Equal(t, "good", restored.Items[0].ProductID)
	assert.Equal(t, 2, restored.Items[0].Quantity)

	// Stored derived fields are ignored, totals come from surviving items
	assert.Equal(t, 5000.0, restored.Total)
	assert.Equal(t, 2, restored.ItemsCount)
}

func TestRestoreBackfillsProductDefaults(t *testing.T) {
	payload := `{
		"items": [
			{"productId": "p1", "product": {"id": "p1"}, "quantity": 1, "price": 900}
		]
	}`

	restored, err := Restore([]byte(payload))
	require.NoError(t, err)
	require.Len(t, restored.Items, 1)

	p := restored.Items[0].Product
	assert.Equal(t, "Product", p.Name)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	assert.True(t, p.InStock)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestRestoreKeepsExplicitProductFields(t *testing.T) {
	payload := `{
		"items": [
			{"productId": "p1", "product": {"id": "p1", "name": "Shaker", "inStock": false, "images": ["a.jpg"]}, "quantity": 1, "price": 500}
		]
	}`

	restored, err := Restore([]byte(payload))
	require.NoError(t, err)
	require.Len(t, restored.Items, 1)

	p := restored.Items[0].Product
	assert.Equal(t, "Shaker", p.Name)
	assert.False(t, p.InStock)
	assert.Equal(t, []string{"a.jpg"}, p.Images)
}

func TestRestoreFractionalQuantityTruncates(t *testing.T) {
	payload := `{
		"items": [
			{"productId": "p1", "product": {"id": "p1"}, "quantity": 2.7, "price": 100}
		]
	}`

	restored, err := Restore([]byte(payload))
	require.NoError(t, err)
	require.Len(t, restored.Items, 1)
	assert.Equal(t, 2, restored.Items[0].Quantity)
}

func TestRestoreEmptyItems(t *testing.T) {
	restored, err := Restore([]byte(`{"items": []}`))

	require.NoError(t, err)
	assert.NotNil(t, restored.Items)
	assert.Empty(t, restored.Items)
}
