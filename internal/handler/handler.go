package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/notify"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/store"
	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

// Handler implements the workout operations behind both transports
// (Lambda Function URL and the local chi server). It holds no state of
// its own; everything durable lives in the injected store.
type Handler struct {
	store    store.Store
	notifier notify.Notifier
	log      *log.Logger
	now      func() time.Time
	newID    func() string
}

func New(st store.Store, n notify.Notifier, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(log.Writer(), "workout ", log.LstdFlags|log.LUTC)
	}
	return &Handler{
		store:    st,
		notifier: n,
		log:      logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Create validates the payload, persists the record, and fires the
// notification. The returned warning is non-empty when the record was
// persisted but the notification failed.
func (h *Handler) Create(ctx context.Context, body []byte) (workout.Record, string, error) {
	rec, err := workout.ParseNew(body)
	if err != nil {
		return workout.Record{}, "", err
	}
	rec.ID = h.newID()
	rec.CreatedAt = h.now()

	if err := h.store.Put(ctx, rec); err != nil {
		return workout.Record{}, "", err
	}

	warning := ""
	if h.notifier != nil {
		if err := h.notifier.Publish(ctx, rec); err != nil {
			// The record is already durable; a failed announcement
			// must not fail the request.
			h.log.Printf("notify error for workout %s: %v", rec.ID, err)
			warning = "workout saved, but notification failed"
		}
	}
	return rec, warning, nil
}

func (h *Handler) List(ctx context.Context) ([]workout.Record, error) {
	return h.store.List(ctx)
}

func (h *Handler) Get(ctx context.Context, id string) (workout.Record, error) {
	return h.store.Get(ctx, id)
}

// Delete removes the record if present. Deleting an id that does not
// exist succeeds: the store cannot distinguish the cases without an
// extra read, and idempotent deletes are safe to retry.
func (h *Handler) Delete(ctx context.Context, id string) error {
	return h.store.Delete(ctx, id)
}

// statusFor maps an operation error to an HTTP status.
func statusFor(err error) int {
	var verr *workout.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errMessage is the client-facing message for an operation error.
// Store internals stay in the logs.
func errMessage(err error) string {
	var verr *workout.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Msg
	case errors.Is(err, store.ErrNotFound):
		return "workout not found"
	default:
		return "failed to process workout"
	}
}
