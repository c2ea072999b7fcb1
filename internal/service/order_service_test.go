package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/events"
	apperrors "github.com/kehilianouar/gymdada-api/pkg/errors"
)

func newOrderFixture(t *testing.T, status domain.OrderStatus) (*OrderService, *mockOrderRepo, *mockOrderEventRepo, uuid.UUID) {
	t.Helper()
	orders := newMockOrderRepo()
	eventRepo := &mockOrderEventRepo{}
	repos := testRepos(orders, eventRepo, &mockSettingsRepo{settings: testStoreSettings()})
	svc := NewOrderService(repos, events.NopPublisher{}, zap.NewNop())

	order := &domain.Order{
		Customer: domain.CustomerInfo{Name: "Ahmed B", Phone: "0550123456", Wilaya: "16"},
		Status:   status,
		Total:    5300,
	}
	require.NoError(t, orders.Create(context.Background(), order))
	orders.createCalls = 0
	return svc, orders, eventRepo, order.ID
}

func TestUpdateStatusValidTransition(t *testing.T) {
	svc, orders, eventRepo, id := newOrderFixture(t, domain.OrderStatusPending)

	updated, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.Equal(t, 1, orders.updateCalls)

	stored, err := orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, stored.Status)

	changes := eventRepo.byType("status_changed")
	require.Len(t, changes, 1)
	assert.Equal(t, id, changes[0].OrderID)
}

func TestUpdateStatusSameStatusIsIdempotent(t *testing.T) {
	svc, orders, eventRepo, id := newOrderFixture(t, domain.OrderStatusConfirmed)

	updated, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.Equal(t, 0, orders.updateCalls)
	assert.Empty(t, eventRepo.byType("status_changed"))
}

func TestUpdateStatusRejectsSkippedStates(t *testing.T) {
	svc, orders, _, id := newOrderFixture(t, domain.OrderStatusPending)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusShipped)

	var transErr *apperrors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, domain.OrderStatusPending, transErr.From)
	assert.Equal(t, domain.OrderStatusShipped, transErr.To)
	assert.Equal(t, 0, orders.updateCalls)
}

func TestUpdateStatusTerminalStatesAreFrozen(t *testing.T) {
	svc, orders, _, id := newOrderFixture(t, domain.OrderStatusDelivered)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusPending)

	var transErr *apperrors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, 0, orders.updateCalls)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, orders, _, id := newOrderFixture(t, domain.OrderStatusPending)

	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatus("lost"))

	var valErr *apperrors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 0, orders.updateCalls)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t, domain.OrderStatusPending)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusConfirmed)

	var notFound *apperrors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestCancellationAllowedUntilShipped(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusProcessing,
	} {
		svc, _, _, id := newOrderFixture(t, status)
		updated, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusCancelled)
		require.NoError(t, err, string(status))
		assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
	}

	svc, _, _, id := newOrderFixture(t, domain.OrderStatusShipped)
	_, err := svc.UpdateStatus(context.Background(), id, domain.OrderStatusCancelled)
	var transErr *apperrors.ErrInvalidStateTransition
	assert.ErrorAs(t, err, &transErr)
}

func TestListWithStatusFilter(t *testing.T) {
	svc, orders, _, _ := newOrderFixture(t, domain.OrderStatusPending)
	require.NoError(t, orders.Create(context.Background(), &domain.Order{Status: domain.OrderStatusShipped}))

	pending, err := svc.List(context.Background(), domain.OrderStatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListUnknownStatusFilter(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t, domain.OrderStatusPending)

	_, err := svc.List(context.Background(), domain.OrderStatus("lost"), 0, 0)

	var valErr *apperrors.ErrValidation
	assert.ErrorAs(t, err, &valErr)
}

func TestEventsRequireExistingOrder(t *testing.T) {
	svc, _, eventRepo, id := newOrderFixture(t, domain.OrderStatusPending)
	eventRepo.Create(context.Background(), &domain.OrderEvent{OrderID: id, EventType: "order_created"})

	evs, err := svc.Events(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, evs, 1)

	_, err = svc.Events(context.Background(), uuid.New())
	var notFound *apperrors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
