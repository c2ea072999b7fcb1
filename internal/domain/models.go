package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product. Carts embed a denormalized copy of
// the product at add time, so the struct is JSON-tagged for the snapshot
// payload as well as API responses.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         float64            `json:"price"`
	OriginalPrice *float64           `json:"originalPrice,omitempty"`
	Images        []string           `json:"images"`
	Category      string             `json:"category"`
	Brand         string             `json:"brand"`
	InStock       bool               `json:"inStock"`
	StockQuantity int                `json:"stockQuantity"`
	Variants      []ProductVariant   `json:"variants,omitempty"`
	VariantPrices map[string]float64 `json:"variantPrices,omitempty"`
	IsNew         bool               `json:"isNew,omitempty"`
	IsBestSeller  bool               `json:"isBestSeller,omitempty"`
	IsFeatured    bool               `json:"isFeatured,omitempty"`
	Slug          string             `json:"slug,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ProductVariant is one selectable value on a variant axis (e.g. size=L).
// A product may expose several axes; a purchase picks one value per axis.
type ProductVariant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Value         string   `json:"value"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity int      `json:"stockQuantity"`
}

// VariantAxes returns the distinct axis names the product exposes
func (p *Product) VariantAxes() []string {
	seen := make(map[string]bool)
	var axes []string
	for _, v := range p.Variants {
		if !seen[v.Name] {
			seen[v.Name] = true
			axes = append(axes, v.Name)
		}
	}
	return axes
}

// UnitPrice resolves the price for a concrete variant selection. Variant
// price overrides are keyed by the selected values joined with "-", values
// ordered by axis name so the key is deterministic. Falls back to the base
// price when no override matches.
func (p *Product) UnitPrice(selected map[string]string) float64 {
	if len(p.VariantPrices) == 0 || len(selected) == 0 {
		return p.Price
	}
	axes := make([]string, 0, len(selected))
	for name := range selected {
		axes = append(axes, name)
	}
	sort.Strings(axes)
	values := make([]string, 0, len(axes))
	for _, name := range axes {
		values = append(values, selected[name])
	}
	if price, ok := p.VariantPrices[strings.Join(values, "-")]; ok {
		return price
	}
	return p.Price
}

// CartItem is one line in a cart: a product at a concrete variant selection.
// Price is the resolved unit price captured at add time.
type CartItem struct {
	ProductID        string            `json:"productId"`
	Product          Product           `json:"product"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selectedVariants,omitempty"`
	Price            float64           `json:"price"`
}

// VariantKey returns the canonical serialization of a selected-variants map.
// Two line items occupy the same slot iff productId and this key match.
func VariantKey(selected map[string]string) string {
	if len(selected) == 0 {
		return ""
	}
	axes := make([]string, 0, len(selected))
	for name := range selected {
		axes = append(axes, name)
	}
	sort.Strings(axes)
	var b strings.Builder
	for i, name := range axes {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(selected[name])
	}
	return b.String()
}

// Cart holds the line items plus the derived total and item count. Total and
// ItemsCount are recomputed from Items by every mutation, never set directly.
type Cart struct {
	Items      []CartItem `json:"items"`
	Total      float64    `json:"total"`
	ItemsCount int        `json:"itemsCount"`
}

// CustomerInfo is the contact/address block entered at checkout
type CustomerInfo struct {
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Wilaya       string       `json:"wilaya"`
	Baladiya     string       `json:"baladiya"`
	Address      string       `json:"address"`
	ShippingType ShippingType `json:"shippingType"`
}

// Order represents a submitted order
type Order struct {
	ID            uuid.UUID    `json:"id"`
	Customer      CustomerInfo `json:"customerInfo"`
	Items         []CartItem   `json:"items"`
	Subtotal      float64      `json:"subtotal"`
	ShippingCost  float64      `json:"shippingCost"`
	Total         float64      `json:"total"`
	Status        OrderStatus  `json:"status"`
	PaymentMethod string       `json:"paymentMethod"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// OrderEvent is an audit record attached to an order
type OrderEvent struct {
	ID        uuid.UUID              `json:"id"`
	OrderID   uuid.UUID              `json:"orderId"`
	EventType string                 `json:"eventType"`
	EventData map[string]interface{} `json:"eventData"` // JSONB
	CreatedAt time.Time              `json:"createdAt"`
}

// WilayaShipping is a region's pair of delivery prices
type WilayaShipping struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DeskPrice float64 `json:"deskPrice"`
	HomePrice float64 `json:"homePrice"`
}

// ShippingSettings holds the store-wide shipping knobs
type ShippingSettings struct {
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	DefaultDeskPrice      float64 `json:"defaultDeskPrice"`
	DefaultHomePrice      float64 `json:"defaultHomePrice"`
}

// ContactInfo is the store's public contact block
type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// SocialMedia holds the store's social links
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// StoreSettings is the store configuration document. Stored as a single
// JSONB row, mirroring the one-document config of the storefront.
type StoreSettings struct {
	StoreName            string           `json:"storeName"`
	StoreDescription     string           `json:"storeDescription"`
	Contact              ContactInfo      `json:"contactInfo"`
	Social               SocialMedia      `json:"socialMedia"`
	Shipping             ShippingSettings `json:"shippingSettings"`
	PaymentMethods       []string         `json:"paymentMethods"`
	ExcludedWilayas      []string         `json:"excludedWilayas"`
	WilayaShippingPrices []WilayaShipping `json:"wilayaShippingPrices"`
}

// IsExcluded reports whether the wilaya is on the no-delivery list
func (s *StoreSettings) IsExcluded(wilayaID string) bool {
	for _, id := range s.ExcludedWilayas {
		if id == wilayaID {
			return true
		}
	}
	return false
}

// TierFor returns the shipping tier for a wilaya, or nil if none is configured
func (s *StoreSettings) TierFor(wilayaID string) *WilayaShipping {
	for i := range s.WilayaShippingPrices {
		if s.WilayaShippingPrices[i].ID == wilayaID {
			return &s.WilayaShippingPrices[i]
		}
	}
	return nil
}

// AvailableWilayas returns the shipping tiers minus the excluded wilayas,
// the list the checkout page offers for selection.
func (s *StoreSettings) AvailableWilayas() []WilayaShipping {
	out := make([]WilayaShipping, 0, len(s.WilayaShippingPrices))
	for _, w := range s.WilayaShippingPrices {
		if !s.IsExcluded(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// Category is a product category
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// Banner is a homepage carousel entry
type Banner struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
	IsActive    bool   `json:"isActive"`
	Position    int    `json:"order"`
}

// AdminKey is a back-office API key. The key itself is never stored, only
// its bcrypt hash.
type AdminKey struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	KeyHash   string    `json:"-"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
