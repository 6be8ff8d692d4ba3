package usecase

import (
	"encoding/json"

	"cayyap-notifier/internal/domain/model"
)

const (
	// DefaultChannelID is the Android notification channel used for visible notifications.
	DefaultChannelID = "cayyap_notifications"

	androidPriorityHigh = "high"
	defaultSound        = "default"
	defaultBadge        = 1
)

// Data section keys. Clients expect every key to exist.
const (
	DataKeyType            = "type"
	DataKeyTitle           = "title"
	DataKeyBody            = "body"
	DataKeyCustomerID      = "customerId"
	DataKeyBusinessID      = "businessId"
	DataKeyOrderID         = "orderId"
	DataKeyBusinessName    = "businessName"
	DataKeyCustomerName    = "customerName"
	DataKeyCustomerCompany = "customerCompany"
	DataKeyAmount          = "amount"
	DataKeyTotalPrice      = "totalPrice"
	DataKeyItems           = "items"
)

// PayloadOptions tunes platform decorations.
type PayloadOptions struct {
	ChannelID string
}

// BuildPayload assembles the provider payload for token. NEW_ORDER payloads are
// data-only; every other kind carries a visible notification plus Android and
// APNs decorations.
func BuildPayload(token string, kind model.Kind, msg model.FormattedMessage, event model.Event, opts PayloadOptions) (model.DeliveryPayload, error) {
	data := map[string]string{
		DataKeyType:            string(kind),
		DataKeyTitle:           msg.Title,
		DataKeyBody:            msg.Body,
		DataKeyCustomerID:      event.CustomerID,
		DataKeyBusinessID:      event.BusinessID,
		DataKeyOrderID:         event.OrderID,
		DataKeyBusinessName:    event.BusinessName,
		DataKeyCustomerName:    event.CustomerName,
		DataKeyCustomerCompany: event.CustomerCompany,
		DataKeyAmount:          optionalNumber(event.Amount),
		DataKeyTotalPrice:      optionalNumber(event.TotalPrice),
	}

	if event.Items != nil {
		raw, err := json.Marshal(event.Items)
		if err != nil {
			return model.DeliveryPayload{}, err
		}
		data[DataKeyItems] = string(raw)
	}

	payload := model.DeliveryPayload{
		Token: token,
		Kind:  kind,
		Data:  data,
	}
	if kind.DataOnly() {
		return payload, nil
	}

	channelID := opts.ChannelID
	if channelID == "" {
		channelID = DefaultChannelID
	}
	payload.Notification = &model.VisibleNotification{Title: msg.Title, Body: msg.Body}
	payload.Android = &model.AndroidConfig{
		Priority:  androidPriorityHigh,
		ChannelID: channelID,
		Sound:     defaultSound,
	}
	payload.APNS = &model.APNSConfig{Sound: defaultSound, Badge: defaultBadge}
	return payload, nil
}

func optionalNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}
