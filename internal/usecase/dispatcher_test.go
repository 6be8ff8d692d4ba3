package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cayyap-notifier/internal/domain/model"
)

func TestDispatcherSendDelivered(t *testing.T) {
	m := &fakeMessenger{SendFunc: func(context.Context, model.DeliveryPayload) (string, error) {
		return "msg-1", nil
	}}
	d := newTestDispatcher(m, nil)

	result := d.Send(context.Background(), "tok", model.Event{Kind: model.KindCustomerApproved, BusinessName: "Cafe"})

	assert.Equal(t, model.Delivered("msg-1"), result)
	sent := m.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Cafe approved you as a customer.", sent[0].Data[DataKeyBody])
}

func TestDispatcherSendCapturesTransportError(t *testing.T) {
	m := &fakeMessenger{SendFunc: func(context.Context, model.DeliveryPayload) (string, error) {
		return "", errors.New("registration-token-not-registered")
	}}
	d := newTestDispatcher(m, nil)

	result := d.Send(context.Background(), "tok", model.Event{Kind: model.KindOrderApproved})

	assert.False(t, result.Success)
	assert.Equal(t, "registration-token-not-registered", result.Error)
	assert.Empty(t, result.MessageID)
}

func TestDispatcherSendCapturesPanic(t *testing.T) {
	m := &fakeMessenger{SendFunc: func(context.Context, model.DeliveryPayload) (string, error) {
		panic("kaboom")
	}}
	d := newTestDispatcher(m, nil)

	var result model.DeliveryResult
	require.NotPanics(t, func() {
		result = d.Send(context.Background(), "tok", model.Event{Kind: model.KindOrderApproved})
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "kaboom")
}

func TestDispatcherDeliverObserves(t *testing.T) {
	calls := 0
	m := &fakeMessenger{SendFunc: func(context.Context, model.DeliveryPayload) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("unavailable")
		}
		return "ok", nil
	}}
	obs := &fakeObserver{}
	d := newTestDispatcher(m, obs)
	event := model.Event{Kind: model.KindBalanceAdded}

	d.Deliver(context.Background(), "c1", model.RoleCustomer, "tok", event)
	d.Deliver(context.Background(), "c1", model.RoleCustomer, "tok", event)
	d.Skip(context.Background(), "c2", model.RoleCustomer, event.Kind, model.OutcomeNoToken)

	assert.Equal(t, []model.Outcome{model.OutcomeDelivered, model.OutcomeFailed, model.OutcomeNoToken}, obs.outcomes(model.RoleCustomer))
	assert.Equal(t, "c1", obs.deliveries[0].RecipientID)
	assert.Equal(t, model.KindBalanceAdded, obs.deliveries[0].Kind)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "short", MaskToken("short"))
	assert.Equal(t, "abcdefghijklmnopqrst...", MaskToken("abcdefghijklmnopqrstuvwxyz"))
}
