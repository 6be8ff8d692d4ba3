package usecase

import (
	"context"
	"sync"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeDirectory struct {
	TokenFunc     func(ctx context.Context, id string) (string, error)
	InfoFunc      func(ctx context.Context, id string) (*model.AccountInfo, error)
	ListStaffFunc func(ctx context.Context, businessID string) ([]model.StaffRecipient, error)
}

func (f *fakeDirectory) Token(ctx context.Context, id string) (string, error) {
	if f.TokenFunc == nil {
		return "", model.ErrAccountNotFound
	}
	return f.TokenFunc(ctx, id)
}

func (f *fakeDirectory) Info(ctx context.Context, id string) (*model.AccountInfo, error) {
	if f.InfoFunc == nil {
		return nil, model.ErrAccountNotFound
	}
	return f.InfoFunc(ctx, id)
}

func (f *fakeDirectory) ListStaff(ctx context.Context, businessID string) ([]model.StaffRecipient, error) {
	if f.ListStaffFunc == nil {
		return nil, nil
	}
	return f.ListStaffFunc(ctx, businessID)
}

// tokens builds a TokenFunc from a fixed account→token table.
func tokens(table map[string]string) func(context.Context, string) (string, error) {
	return func(_ context.Context, id string) (string, error) {
		tok, ok := table[id]
		if !ok {
			return "", model.ErrAccountNotFound
		}
		return tok, nil
	}
}

type fakeMessenger struct {
	SendFunc func(ctx context.Context, payload model.DeliveryPayload) (string, error)

	mu       sync.Mutex
	payloads []model.DeliveryPayload
}

func (f *fakeMessenger) Send(ctx context.Context, payload model.DeliveryPayload) (string, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.SendFunc == nil {
		return "projects/test/messages/" + payload.Token, nil
	}
	return f.SendFunc(ctx, payload)
}

func (f *fakeMessenger) sent() []model.DeliveryPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.DeliveryPayload(nil), f.payloads...)
}

func (f *fakeMessenger) sentTo(token string) (model.DeliveryPayload, bool) {
	for _, p := range f.sent() {
		if p.Token == token {
			return p, true
		}
	}
	return model.DeliveryPayload{}, false
}

type fakeObserver struct {
	mu         sync.Mutex
	deliveries []ports.Delivery
	fanOuts    []model.FanOutSummary
}

func (f *fakeObserver) ObserveDelivery(_ context.Context, d ports.Delivery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, d)
}

func (f *fakeObserver) ObserveFanOut(_ context.Context, _ model.Kind, s model.FanOutSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fanOuts = append(f.fanOuts, s)
}

func (f *fakeObserver) outcomes(role model.RecipientRole) []model.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Outcome
	for _, d := range f.deliveries {
		if d.Role == role {
			out = append(out, d.Outcome)
		}
	}
	return out
}

func newTestDispatcher(m ports.Messenger, o ports.Observer) *Dispatcher {
	return NewDispatcher(NewFormatter("en"), m, o, nopLogger{}, PayloadOptions{})
}
