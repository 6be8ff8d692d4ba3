package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cayyap-notifier/internal/domain/model"
)

func TestNotificationRelayDelivers(t *testing.T) {
	m := &fakeMessenger{}
	obs := &fakeObserver{}
	dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok-c1"})}
	relay := NewNotificationRelay(dir, newTestDispatcher(m, obs), nopLogger{})

	result := relay.Handle(context.Background(), "n1", model.Record{
		"type":         "BALANCE_ADDED",
		"customerId":   "c1",
		"businessId":   "b1",
		"businessName": "Cafe",
		"amount":       25,
	})

	require.NotNil(t, result)
	assert.True(t, result.Success)
	payload, ok := m.sentTo("tok-c1")
	require.True(t, ok)
	assert.Equal(t, "Cafe added ₺25.00 balance to your account.", payload.Data[DataKeyBody])
	assert.Equal(t, "25", payload.Data[DataKeyAmount])
	assert.Equal(t, []model.Outcome{model.OutcomeDelivered}, obs.outcomes(model.RoleCustomer))
}

func TestNotificationRelayNoOps(t *testing.T) {
	tests := []struct {
		name   string
		dir    *fakeDirectory
		record model.Record
	}{
		{
			name:   "missing customer id",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok"})},
			record: model.Record{"type": "ORDER_APPROVED"},
		},
		{
			name:   "missing kind",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok"})},
			record: model.Record{"customerId": "c1"},
		},
		{
			name:   "customer not found",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{})},
			record: model.Record{"type": "ORDER_APPROVED", "customerId": "c1"},
		},
		{
			name:   "blank token",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "   "})},
			record: model.Record{"type": "ORDER_APPROVED", "customerId": "c1"},
		},
		{
			name:   "non-finite amount",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok"})},
			record: model.Record{"type": "BALANCE_ADDED", "customerId": "c1", "amount": "NaN"},
		},
		{
			name:   "items not a list",
			dir:    &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok"})},
			record: model.Record{"type": "ORDER_APPROVED", "customerId": "c1", "items": "Tea"},
		},
		{
			name: "directory failure",
			dir: &fakeDirectory{TokenFunc: func(context.Context, string) (string, error) {
				return "", errors.New("deadline exceeded")
			}},
			record: model.Record{"type": "ORDER_APPROVED", "customerId": "c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMessenger{}
			relay := NewNotificationRelay(tt.dir, newTestDispatcher(m, nil), nopLogger{})

			assert.Nil(t, relay.Handle(context.Background(), "n1", tt.record))
			assert.Empty(t, m.sent())
		})
	}
}

func TestNotificationRelaySkipsMalformedItems(t *testing.T) {
	m := &fakeMessenger{}
	dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok-c1"})}
	relay := NewNotificationRelay(dir, newTestDispatcher(m, nil), nopLogger{})

	result := relay.Handle(context.Background(), "n1", model.Record{
		"type":         "ORDER_APPROVED",
		"customerId":   "c1",
		"businessName": "Cafe",
		"items":        []any{map[string]any{"name": "Tea", "quantity": 1}, nil},
	})

	require.NotNil(t, result)
	assert.True(t, result.Success)
	payload, ok := m.sentTo("tok-c1")
	require.True(t, ok)
	assert.Equal(t, "1 X Tea", payload.Data[DataKeyBody])
	assert.JSONEq(t, `[{"name":"Tea","quantity":1}]`, payload.Data[DataKeyItems])
}

func TestNotificationRelayReturnsFailure(t *testing.T) {
	m := &fakeMessenger{SendFunc: func(context.Context, model.DeliveryPayload) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"c1": "tok"})}
	relay := NewNotificationRelay(dir, newTestDispatcher(m, nil), nopLogger{})

	result := relay.Handle(context.Background(), "n1", model.Record{"kind": "ORDER_CANCELLED", "customerId": "c1"})

	require.NotNil(t, result)
	assert.Equal(t, model.Failed("quota exceeded"), *result)
	assert.Len(t, m.sent(), 1)
}

func TestCustomerRequestRelay(t *testing.T) {
	pending := model.Record{"status": "pending", "businessId": "b1", "customerId": "c1"}

	t.Run("not pending", func(t *testing.T) {
		m := &fakeMessenger{}
		dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"b1": "tok-b1"})}
		relay := NewCustomerRequestRelay(dir, newTestDispatcher(m, nil), nopLogger{})

		for _, status := range []string{"accepted", "Pending", ""} {
			rec := model.Record{"status": status, "businessId": "b1", "customerId": "c1"}
			assert.Nil(t, relay.Handle(context.Background(), "r1", rec))
		}
		assert.Empty(t, m.sent())
	})

	t.Run("pending with name", func(t *testing.T) {
		m := &fakeMessenger{}
		dir := &fakeDirectory{
			TokenFunc: tokens(map[string]string{"b1": "tok-b1"}),
			InfoFunc: func(context.Context, string) (*model.AccountInfo, error) {
				return &model.AccountInfo{DisplayName: "Ali"}, nil
			},
		}
		relay := NewCustomerRequestRelay(dir, newTestDispatcher(m, nil), nopLogger{})

		result := relay.Handle(context.Background(), "r1", pending)

		require.NotNil(t, result)
		assert.True(t, result.Success)
		payload, ok := m.sentTo("tok-b1")
		require.True(t, ok)
		assert.Equal(t, "NEW_CUSTOMER_REQUEST", payload.Data[DataKeyType])
		assert.Equal(t, "Ali wants to register as a customer.", payload.Notification.Body)
	})

	t.Run("customer info unavailable", func(t *testing.T) {
		m := &fakeMessenger{}
		dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"b1": "tok-b1"})}
		relay := NewCustomerRequestRelay(dir, newTestDispatcher(m, nil), nopLogger{})

		result := relay.Handle(context.Background(), "r1", pending)

		require.NotNil(t, result)
		payload, ok := m.sentTo("tok-b1")
		require.True(t, ok)
		assert.Equal(t, "There is a new customer registration request.", payload.Data[DataKeyBody])
	})

	t.Run("business unreachable", func(t *testing.T) {
		m := &fakeMessenger{}
		obs := &fakeObserver{}
		dir := &fakeDirectory{TokenFunc: tokens(map[string]string{"b1": ""})}
		relay := NewCustomerRequestRelay(dir, newTestDispatcher(m, obs), nopLogger{})

		assert.Nil(t, relay.Handle(context.Background(), "r1", pending))
		assert.Empty(t, m.sent())
		assert.Equal(t, []model.Outcome{model.OutcomeNoToken}, obs.outcomes(model.RoleBusiness))
	})

	t.Run("missing business id", func(t *testing.T) {
		m := &fakeMessenger{}
		relay := NewCustomerRequestRelay(&fakeDirectory{}, newTestDispatcher(m, nil), nopLogger{})

		assert.Nil(t, relay.Handle(context.Background(), "r1", model.Record{"status": "pending", "customerId": "c1"}))
		assert.Empty(t, m.sent())
	})
}
