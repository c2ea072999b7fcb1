package domain

// OrderStatus represents the lifecycle status of a customer order
type OrderStatus string

const (
	// PENDING - new order, awaiting confirmation by the store
	OrderStatusPending OrderStatus = "pending"
	// CONFIRMED - order confirmed, awaiting preparation
	OrderStatusConfirmed OrderStatus = "confirmed"
	// PROCESSING - order is being prepared for shipment
	OrderStatusProcessing OrderStatus = "processing"
	// SHIPPED - order handed to the carrier
	OrderStatusShipped OrderStatus = "shipped"
	// DELIVERED - order received by the customer
	OrderStatusDelivered OrderStatus = "delivered"
	// CANCELLED - order cancelled before shipment
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if a status transition is valid.
// Cancellation is allowed any time before the order ships.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusCancelled
	case OrderStatusConfirmed:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// ShippingType selects between the two delivery prices of a wilaya tier
type ShippingType string

const (
	// HOME - courier delivers to the customer's address
	ShippingTypeHome ShippingType = "home"
	// DESK - customer picks up at the carrier's desk
	ShippingTypeDesk ShippingType = "desk"
)

// IsValid checks if the shipping type is known
func (t ShippingType) IsValid() bool {
	return t == ShippingTypeHome || t == ShippingTypeDesk
}
