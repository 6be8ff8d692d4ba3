package nats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cayyap-notifier/internal/domain/model"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "cayyap.orders.created", Subject("cayyap", "orders"))
}

func TestDecodeEvent(t *testing.T) {
	body := []byte(`{"id":"o1","data":{"businessId":"b1","customerId":"c1","totalPrice":42.5,"items":[{"name":"Tea","quantity":2}]}}`)

	event, err := DecodeEvent("orders", body)
	require.NoError(t, err)

	assert.Equal(t, "orders", event.Collection)
	assert.Equal(t, "o1", event.ID)
	assert.Equal(t, json.Number("42.5"), event.Data["totalPrice"])

	rec, err := model.ParseOrderRecord(event.Data)
	require.NoError(t, err)
	assert.Equal(t, 42.5, rec.TotalPrice)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "Tea", rec.Items[0].Name)
	assert.Equal(t, 2.0, rec.Items[0].Quantity)
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent("orders", []byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeEvent("orders", []byte(`{"data":{}}`))
	assert.ErrorContains(t, err, "missing id")

	event, err := DecodeEvent("relations", []byte(`{"id":"r1"}`))
	require.NoError(t, err)
	assert.NotNil(t, event.Data)
}
