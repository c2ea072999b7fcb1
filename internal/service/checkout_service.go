package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/cart"
	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/events"
	"github.com/kehilianouar/gymdada-api/internal/repository"
	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

const minPhoneLength = 10

// CheckoutRequest is the customer-entered checkout form
type CheckoutRequest struct {
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Wilaya        string              `json:"wilaya"`
	Baladiya      string              `json:"baladiya"`
	Address       string              `json:"address"`
	ShippingType  domain.ShippingType `json:"shippingType"`
	Notes         string              `json:"notes"`
	PaymentMethod string              `json:"paymentMethod"`
}

// Quote is the priced summary shown before submission
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Total        float64 `json:"total"`
	FreeShipping bool    `json:"freeShipping"`
}

// CheckoutService turns the current cart plus a checkout form into a priced,
// persisted order.
type CheckoutService struct {
	repos     *repository.Repositories
	settings  *SettingsService
	publisher events.Publisher
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, settings *SettingsService, publisher events.Publisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		repos:     repos,
		settings:  settings,
		publisher: publisher,
		logger:    logger,
	}
}

// Quote computes the shipping cost and grand total for the current cart and
// a destination. An excluded wilaya refuses the quote before anything else.
func (s *CheckoutService) Quote(ctx context.Context, c domain.Cart, wilayaID string, shippingType domain.ShippingType) (*Quote, error) {
	if !shippingType.IsValid() {
		return nil, &errors.ErrValidation{Message: "unknown shipping type"}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load store settings for quote", zap.Error(err))
		return nil, err
	}

	if settings.IsExcluded(wilayaID) {
		return nil, &errors.ErrRegionNotServiceable{Wilaya: wilayaID}
	}

	tier := settings.TierFor(wilayaID)
	deskPrice := settings.Shipping.DefaultDeskPrice
	homePrice := settings.Shipping.DefaultHomePrice
	if tier != nil {
		deskPrice = tier.DeskPrice
		homePrice = tier.HomePrice
	}

	subtotal := c.Total
	threshold := settings.Shipping.FreeShippingThreshold

	var cost float64
	free := threshold > 0 && subtotal >= threshold
	if !free {
		if shippingType == domain.ShippingTypeHome {
			cost = homePrice
		} else {
			cost = deskPrice
		}
	}

	return &Quote{
		Subtotal:     subtotal,
		ShippingCost: cost,
		Total:        subtotal + cost,
		FreeShipping: free,
	}, nil
}

// Submit validates the form, prices the order, persists it through the order
// sink and clears the cart. The cart is cleared only after the order is
// confirmed durable, so a failed submission leaves it intact for retry.
func (s *CheckoutService) Submit(ctx context.Context, store *cart.Store, req CheckoutRequest) (*domain.Order, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	c := store.Cart()
	if len(c.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	quote, err := s.Quote(ctx, c, req.Wilaya, req.ShippingType)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	order := &domain.Order{
		Customer: domain.CustomerInfo{
			Name:         strings.TrimSpace(req.Name),
			Phone:        strings.TrimSpace(req.Phone),
			Wilaya:       req.Wilaya,
			Baladiya:     req.Baladiya,
			Address:      strings.TrimSpace(req.Address),
			ShippingType: req.ShippingType,
		},
		Items:         c.Items,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.ShippingCost,
		Total:         quote.Total,
		Status:        domain.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		order.Notes = &notes
	}

	s.logger.Info("Submitting order",
		zap.String("wilaya", req.Wilaya),
		zap.Int("item_count", len(order.Items)),
		zap.Float64("total", order.Total))

	if err := s.repos.Order.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order, keeping cart", zap.Error(err))
		return nil, err
	}

	// Audit trail and downstream events are best effort once the order is durable
	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		EventData: map[string]interface{}{
			"status": order.Status,
			"total":  order.Total,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order_created event", zap.Error(err))
	}
	if err := s.publisher.OrderCreated(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order.created", zap.Error(err))
	}

	store.Clear(ctx)

	return order, nil
}

func validateCheckout(req CheckoutRequest) error {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "required"
	} else if len(strings.TrimSpace(req.Phone)) < minPhoneLength {
		fields["phone"] = "too short"
	}
	if req.Wilaya == "" {
		fields["wilaya"] = "required"
	}
	if req.Baladiya == "" {
		fields["baladiya"] = "required"
	}
	if strings.TrimSpace(req.Address) == "" {
		fields["address"] = "required"
	}
	if !req.ShippingType.IsValid() {
		fields["shippingType"] = "must be home or desk"
	}

	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "missing required checkout fields", Fields: fields}
	}
	return nil
}
