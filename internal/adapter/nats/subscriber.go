package nats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	natsgo "github.com/nats-io/nats.go"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// DefaultSubjectPrefix prefixes every subscribed subject.
const DefaultSubjectPrefix = "cayyap"

// envelope is the JSON body of a created-document message.
type envelope struct {
	ID   string       `json:"id"`
	Data model.Record `json:"data"`
}

// reply is sent back when the publisher used request/reply.
type reply struct {
	Handled bool                  `json:"handled"`
	Result  *model.DeliveryResult `json:"result,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Subscriber receives created-document events from NATS subjects
// <prefix>.<collection>.created.
type Subscriber struct {
	conn        *natsgo.Conn
	prefix      string
	collections []string
	logger      ports.Logger
}

var _ ports.EventSource = (*Subscriber)(nil)

// Connect dials url and returns a subscriber for collections.
func Connect(url, prefix string, collections []string, logger ports.Logger) (*Subscriber, error) {
	conn, err := natsgo.Connect(url,
		natsgo.Name("cayyap-notifier"),
		natsgo.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Subscriber{conn: conn, prefix: prefix, collections: collections, logger: logger}, nil
}

func (s *Subscriber) Name() string { return "nats" }

// Listen subscribes to every collection subject and blocks until ctx is done.
func (s *Subscriber) Listen(ctx context.Context, handler ports.EventHandler) error {
	subs := make([]*natsgo.Subscription, 0, len(s.collections))
	defer func() {
		for _, sub := range subs {
			_ = sub.Unsubscribe()
		}
	}()

	for _, collection := range s.collections {
		subject := Subject(s.prefix, collection)
		sub, err := s.conn.Subscribe(subject, func(msg *natsgo.Msg) {
			s.handle(ctx, collection, msg, handler)
		})
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		subs = append(subs, sub)
		s.logger.Info(ctx, "subscribed", "subject", subject)
	}

	<-ctx.Done()
	return nil
}

// Close drains the connection.
func (s *Subscriber) Close() {
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
	}
}

func (s *Subscriber) handle(ctx context.Context, collection string, msg *natsgo.Msg, handler ports.EventHandler) {
	event, err := DecodeEvent(collection, msg.Data)
	if err != nil {
		s.logger.Warn(ctx, "dropping malformed event", "subject", msg.Subject, "error", err)
		s.respond(ctx, msg, reply{Error: err.Error()})
		return
	}

	result, err := handler.Route(ctx, event)
	if err != nil {
		s.logger.Error(ctx, "event not handled", "subject", msg.Subject, "id", event.ID, "error", err)
		s.respond(ctx, msg, reply{Error: err.Error()})
		return
	}
	s.respond(ctx, msg, reply{Handled: result != nil, Result: result})
}

func (s *Subscriber) respond(ctx context.Context, msg *natsgo.Msg, r reply) {
	if msg.Reply == "" {
		return
	}
	body, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := msg.Respond(body); err != nil {
		s.logger.Warn(ctx, "reply failed", "subject", msg.Reply, "error", err)
	}
}

// Subject returns the subject carrying created events of collection.
func Subject(prefix, collection string) string {
	return strings.Join([]string{prefix, collection, "created"}, ".")
}

// DecodeEvent parses a message body. Numbers are kept as json.Number.
func DecodeEvent(collection string, body []byte) (model.CreatedEvent, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return model.CreatedEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if strings.TrimSpace(env.ID) == "" {
		return model.CreatedEvent{}, errors.New("decode event: missing id")
	}
	if env.Data == nil {
		env.Data = model.Record{}
	}
	return model.CreatedEvent{Collection: collection, ID: env.ID, Data: env.Data}, nil
}
