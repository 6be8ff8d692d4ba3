package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

const tracerName = "cayyap-notifier/usecase"

// Dispatcher is the single path through which handlers transmit pushes.
// Send never returns an error: every failure becomes a failed DeliveryResult.
type Dispatcher struct {
	formatter *Formatter
	messenger ports.Messenger
	observer  ports.Observer
	logger    ports.Logger
	opts      PayloadOptions
	tracer    trace.Tracer
}

// NewDispatcher constructs a Dispatcher. observer may be nil.
func NewDispatcher(formatter *Formatter, messenger ports.Messenger, observer ports.Observer, logger ports.Logger, opts PayloadOptions) *Dispatcher {
	return &Dispatcher{
		formatter: formatter,
		messenger: messenger,
		observer:  observer,
		logger:    logger,
		opts:      opts,
		tracer:    otel.Tracer(tracerName),
	}
}

// Format exposes the formatter used for payloads, for logging by handlers.
func (d *Dispatcher) Format(event model.Event) model.FormattedMessage {
	return d.formatter.Format(event.Kind, event)
}

// Send formats, builds and transmits one push to token.
func (d *Dispatcher) Send(ctx context.Context, token string, event model.Event) (result model.DeliveryResult) {
	ctx, span := d.tracer.Start(ctx, "push.send", trace.WithAttributes(
		attribute.String("notification.kind", string(event.Kind)),
	))
	defer func() {
		if r := recover(); r != nil {
			result = model.Failed(fmt.Sprintf("internal error: %v", r))
		}
		span.SetAttributes(attribute.Bool("notification.success", result.Success))
		if !result.Success {
			span.SetStatus(codes.Error, result.Error)
		}
		span.End()
	}()

	msg := d.formatter.Format(event.Kind, event)
	payload, err := BuildPayload(token, event.Kind, msg, event, d.opts)
	if err != nil {
		d.logger.Error(ctx, "failed to build push payload", "kind", event.Kind, "error", err)
		return model.Failed(fmt.Sprintf("build payload: %v", err))
	}

	messageID, err := d.messenger.Send(ctx, payload)
	if err != nil {
		d.logger.Error(ctx, "push send failed", "kind", event.Kind, "token", MaskToken(token), "error", err)
		return model.Failed(err.Error())
	}

	d.logger.Info(ctx, "push sent", "kind", event.Kind, "messageId", messageID)
	return model.Delivered(messageID)
}

// Deliver sends to one recipient and records the outcome under role.
func (d *Dispatcher) Deliver(ctx context.Context, recipientID string, role model.RecipientRole, token string, event model.Event) model.DeliveryResult {
	start := time.Now()
	result := d.Send(ctx, token, event)

	outcome := model.OutcomeDelivered
	if !result.Success {
		outcome = model.OutcomeFailed
	}
	d.observe(ctx, ports.Delivery{
		Kind:        event.Kind,
		RecipientID: recipientID,
		Role:        role,
		Outcome:     outcome,
		Duration:    time.Since(start),
	})
	return result
}

// Skip records a delivery that was not attempted.
func (d *Dispatcher) Skip(ctx context.Context, recipientID string, role model.RecipientRole, kind model.Kind, outcome model.Outcome) {
	d.observe(ctx, ports.Delivery{
		Kind:        kind,
		RecipientID: recipientID,
		Role:        role,
		Outcome:     outcome,
	})
}

func (d *Dispatcher) observe(ctx context.Context, delivery ports.Delivery) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveDelivery(ctx, delivery)
}

// MaskToken shortens a device token for logs.
func MaskToken(token string) string {
	const visible = 20
	if len(token) <= visible {
		return token
	}
	return token[:visible] + "..."
}
