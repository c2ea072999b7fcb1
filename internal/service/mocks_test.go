package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository"
	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

type mockOrderRepo struct {
	mu          sync.Mutex
	orders      map[uuid.UUID]*domain.Order
	createCalls int
	updateCalls int
	createErr   error
	updateErr   error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	out := *order
	return &out, nil
}

func (m *mockOrderRepo) List(_ context.Context, limit, offset int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		c := *o
		out = append(out, &c)
	}
	return out, nil
}

func (m *mockOrderRepo) ListByStatus(_ context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if o.Status == status {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	order, ok := m.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	return nil
}

type mockOrderEventRepo struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
}

func (m *mockOrderEventRepo) Create(_ context.Context, event *domain.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockOrderEventRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OrderEvent
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockOrderEventRepo) byType(eventType string) []*domain.OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OrderEvent
	for _, e := range m.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type mockSettingsRepo struct {
	mu       sync.Mutex
	settings *domain.StoreSettings
	err      error
	getCalls int
}

func (m *mockSettingsRepo) Get(context.Context) (*domain.StoreSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return nil, &errors.ErrNotFound{Resource: "store settings", ID: "store_config"}
	}
	out := *m.settings
	return &out, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, settings *domain.StoreSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	stored := *settings
	m.settings = &stored
	return nil
}

func testRepos(orders *mockOrderRepo, events *mockOrderEventRepo, settings *mockSettingsRepo) *repository.Repositories {
	return &repository.Repositories{
		Order:      orders,
		OrderEvent: events,
		Settings:   settings,
	}
}

func testStoreSettings() *domain.StoreSettings {
	return &domain.StoreSettings{
		StoreName: "GYM DADA STORE",
		Shipping: domain.ShippingSettings{
			FreeShippingThreshold: 10000,
			DefaultDeskPrice:      500,
			DefaultHomePrice:      800,
		},
		PaymentMethods:  []string{"cod"},
		ExcludedWilayas: []string{"33"},
		WilayaShippingPrices: []domain.WilayaShipping{
			{ID: "16", Name: "الجزائر", DeskPrice: 300, HomePrice: 500},
			{ID: "33", Name: "إليزي", DeskPrice: 1000, HomePrice: 1200},
		},
	}
}
