package fcm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/messaging"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// ErrTokenUnregistered marks sends rejected because the device token is no longer valid.
var ErrTokenUnregistered = errors.New("device token unregistered")

// sender is the subset of *messaging.Client used here.
type sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Messenger implements ports.Messenger with Firebase Cloud Messaging.
type Messenger struct {
	client  sender
	timeout time.Duration
	logger  ports.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

// New creates an FCM messenger. A zero timeout leaves ctx untouched.
func New(client *messaging.Client, timeout time.Duration, logger ports.Logger) *Messenger {
	return newMessenger(client, timeout, logger)
}

func newMessenger(client sender, timeout time.Duration, logger ports.Logger) *Messenger {
	return &Messenger{client: client, timeout: timeout, logger: logger}
}

// Send transmits the payload and returns the FCM message name.
func (m *Messenger) Send(ctx context.Context, payload model.DeliveryPayload) (string, error) {
	if strings.TrimSpace(payload.Token) == "" {
		return "", fmt.Errorf("fcm send: empty device token")
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	id, err := m.client.Send(ctx, ToMessage(payload))
	if err != nil {
		if messaging.IsUnregistered(err) {
			return "", fmt.Errorf("%w: %v", ErrTokenUnregistered, err)
		}
		return "", fmt.Errorf("fcm send: %w", err)
	}

	m.logger.Debug(ctx, "fcm accepted message", "kind", payload.Kind, "messageId", id, "dataOnly", payload.DataOnly())
	return id, nil
}

// ToMessage maps a provider-neutral payload onto the FCM message type.
func ToMessage(p model.DeliveryPayload) *messaging.Message {
	msg := &messaging.Message{
		Token: p.Token,
		Data:  p.Data,
	}

	if p.Notification != nil {
		msg.Notification = &messaging.Notification{
			Title: p.Notification.Title,
			Body:  p.Notification.Body,
		}
	}

	if p.Android != nil {
		msg.Android = &messaging.AndroidConfig{
			Priority: p.Android.Priority,
			Notification: &messaging.AndroidNotification{
				ChannelID: p.Android.ChannelID,
				Sound:     p.Android.Sound,
			},
		}
	}

	if p.APNS != nil {
		badge := p.APNS.Badge
		msg.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: p.APNS.Sound,
					Badge: &badge,
				},
			},
		}
	}

	return msg
}
