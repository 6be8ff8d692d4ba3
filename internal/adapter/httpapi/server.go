package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
	"cayyap-notifier/internal/usecase"
)

const maxBodyBytes = 1 << 20

// Endpoints groups the read-only handlers mounted next to the ingress.
type Endpoints struct {
	Metrics http.Handler
	Stats   http.Handler
}

type eventResponse struct {
	Collection string                `json:"collection"`
	ID         string                `json:"id"`
	Handled    bool                  `json:"handled"`
	Result     *model.DeliveryResult `json:"result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP ingress.
//
//	POST /events/{collection}/{id}  record JSON body, 202 with the handler result
//	GET  /healthz
//	GET  /metrics                   Prometheus exposition
//	GET  /stats                     delivery counters as JSON
func NewRouter(handler ports.EventHandler, endpoints Endpoints, timeout time.Duration, logger ports.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	if endpoints.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", endpoints.Metrics)
	}
	if endpoints.Stats != nil {
		r.Method(http.MethodGet, "/stats", endpoints.Stats)
	}

	r.With(middleware.AllowContentType("application/json")).
		Post("/events/{collection}/{id}", handleEvent(handler, timeout, logger))

	return r
}

func handleEvent(handler ports.EventHandler, timeout time.Duration, logger ports.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := chi.URLParam(r, "collection")
		id := chi.URLParam(r, "id")

		data, err := decodeRecord(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			logger.Warn(r.Context(), "rejecting event body", "collection", collection, "id", id, "error", err)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		// delivery must not be cut short by a client disconnect
		ctx := context.WithoutCancel(r.Context())
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result, err := handler.Route(ctx, model.CreatedEvent{Collection: collection, ID: id, Data: data})
		if err != nil {
			var unknown *usecase.UnknownCollectionError
			status := http.StatusInternalServerError
			if errors.As(err, &unknown) {
				status = http.StatusNotFound
			}
			render.Status(r, status)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, eventResponse{
			Collection: collection,
			ID:         id,
			Handled:    result != nil,
			Result:     result,
		})
	}
}

func decodeRecord(body io.Reader) (model.Record, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data model.Record
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		data = model.Record{}
	}
	return data, nil
}
