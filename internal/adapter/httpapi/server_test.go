package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type handlerFunc func(ctx context.Context, event model.CreatedEvent) (*model.DeliveryResult, error)

func (f handlerFunc) Route(ctx context.Context, event model.CreatedEvent) (*model.DeliveryResult, error) {
	return f(ctx, event)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostEvent(t *testing.T) {
	var got model.CreatedEvent
	h := NewRouter(handlerFunc(func(_ context.Context, e model.CreatedEvent) (*model.DeliveryResult, error) {
		got = e
		r := model.Delivered("msg-1")
		return &r, nil
	}), Endpoints{}, 0, nopLogger{})

	rec := post(t, h, "/events/notifications/n1", `{"type":"BALANCE_ADDED","customerId":"c1","amount":12.5}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "notifications", got.Collection)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "c1", got.Data.String("customerId"))
	amount, ok := got.Data.Float("amount")
	require.True(t, ok)
	assert.Equal(t, 12.5, *amount)

	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Handled)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "msg-1", resp.Result.MessageID)
}

func TestPostEventNoOp(t *testing.T) {
	h := NewRouter(handlerFunc(func(context.Context, model.CreatedEvent) (*model.DeliveryResult, error) {
		return nil, nil
	}), Endpoints{}, 0, nopLogger{})

	rec := post(t, h, "/events/relations/r1", `{"status":"accepted"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Handled)
	assert.Nil(t, resp.Result)
}

func TestPostEventErrors(t *testing.T) {
	h := NewRouter(handlerFunc(func(_ context.Context, e model.CreatedEvent) (*model.DeliveryResult, error) {
		if e.Collection == "invoices" {
			return nil, &usecase.UnknownCollectionError{Collection: e.Collection}
		}
		return nil, errors.New("boom")
	}), Endpoints{}, 0, nopLogger{})

	assert.Equal(t, http.StatusNotFound, post(t, h, "/events/invoices/i1", `{}`).Code)
	assert.Equal(t, http.StatusInternalServerError, post(t, h, "/events/orders/o1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/events/orders/o1", `[1,2`).Code)
}

func TestReadEndpoints(t *testing.T) {
	h := NewRouter(handlerFunc(func(context.Context, model.CreatedEvent) (*model.DeliveryResult, error) {
		return nil, nil
	}), Endpoints{
		Stats: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"fanOuts":0}`))
		}),
	}, 0, nopLogger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fanOuts":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
