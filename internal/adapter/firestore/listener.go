package firestore

import (
	"context"
	"errors"
	"fmt"

	gfs "cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// Listener turns document additions in watched collections into events.
// Documents present when the listener starts are not replayed.
type Listener struct {
	client      *gfs.Client
	collections []string
	logger      ports.Logger
}

var _ ports.EventSource = (*Listener)(nil)

// NewListener creates a snapshot listener over collections.
func NewListener(client *gfs.Client, collections []string, logger ports.Logger) *Listener {
	return &Listener{client: client, collections: collections, logger: logger}
}

func (l *Listener) Name() string { return "firestore" }

// Listen blocks until ctx is cancelled or a watch fails.
func (l *Listener) Listen(ctx context.Context, handler ports.EventHandler) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, collection := range l.collections {
		g.Go(func() error {
			return l.watch(ctx, collection, handler)
		})
	}
	return g.Wait()
}

func (l *Listener) watch(ctx context.Context, collection string, handler ports.EventHandler) error {
	it := l.client.Collection(collection).Snapshots(ctx)
	defer it.Stop()

	l.logger.Info(ctx, "watching collection", "collection", collection)
	var filter snapshotFilter
	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("watch %s: %w", collection, err)
		}
		for _, event := range filter.events(collection, snap.Changes) {
			if _, err := handler.Route(ctx, event); err != nil {
				l.logger.Error(ctx, "event not handled", "collection", collection, "id", event.ID, "error", err)
			}
		}
	}
}

// snapshotFilter drops the first snapshot of a watch, which lists every
// document already in the collection.
type snapshotFilter struct {
	seen bool
}

func (f *snapshotFilter) events(collection string, changes []gfs.DocumentChange) []model.CreatedEvent {
	if !f.seen {
		f.seen = true
		return nil
	}
	return addedEvents(collection, changes)
}

// addedEvents keeps document additions in order; modifications and removals
// are ignored.
func addedEvents(collection string, changes []gfs.DocumentChange) []model.CreatedEvent {
	var events []model.CreatedEvent
	for _, change := range changes {
		if change.Kind != gfs.DocumentAdded || change.Doc == nil || change.Doc.Ref == nil {
			continue
		}
		data := change.Doc.Data()
		if data == nil {
			data = map[string]any{}
		}
		events = append(events, model.CreatedEvent{
			Collection: collection,
			ID:         change.Doc.Ref.ID,
			Data:       model.Record(data),
		})
	}
	return events
}
