package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router serves the same operations over plain HTTP for local
// development, with the static frontend mounted by the caller.
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "handler is running"})
	})

	r.Route("/workouts", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			body, err := io.ReadAll(req.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			rec, warning, err := h.Create(req.Context(), body)
			if err != nil {
				h.writeOpError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, createResponse{Record: rec, Warning: warning})
		})

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			recs, err := h.List(req.Context())
			if err != nil {
				h.writeOpError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, recs)
		})

		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			rec, err := h.Get(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				h.writeOpError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if err := h.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
				h.writeOpError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not supported")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not supported")
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS,POST,GET,DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeOpError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Printf("request error: %v", err)
	}
	writeError(w, status, errMessage(err))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
