package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eventbook/server/internal/api/middleware"
	"github.com/eventbook/server/internal/api/pagination"
	"github.com/eventbook/server/internal/api/problem"
	"github.com/eventbook/server/internal/domain/events"
	"github.com/eventbook/server/internal/domain/ids"
	"github.com/eventbook/server/internal/metrics"
)

const (
	problemValidation  = "https://eventbook.dev/problems/validation-error"
	problemNotFound    = "https://eventbook.dev/problems/not-found"
	problemForbidden   = "https://eventbook.dev/problems/forbidden"
	problemUnauthorized  = "https://eventbook.dev/problems/unauthorized"
	problemServerError = "https://eventbook.dev/problems/server-error"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", nil, h.Env)
		return
	}

	page, err := pagination.ParsePage(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", err, h.Env)
		return
	}

	requester := middleware.IdentityFromContext(r.Context())
	result, err := h.Service.List(r.Context(), requester, page)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", nil, h.Env)
		return
	}

	var sub events.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", err, h.Env)
		return
	}

	requester := middleware.IdentityFromContext(r.Context())
	created, err := h.Service.Create(r.Context(), requester, sub)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	metrics.EventsCreatedTotal.Inc()
	w.Header().Set("Location", created.Links["self"].Href)
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", nil, h.Env)
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	requester := middleware.IdentityFromContext(r.Context())
	item, err := h.Service.Get(r.Context(), requester, id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", nil, h.Env)
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var sub events.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", err, h.Env)
		return
	}

	requester := middleware.IdentityFromContext(r.Context())
	updated, err := h.Service.Update(r.Context(), requester, id, sub)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	metrics.EventsUpdatedTotal.Inc()
	writeJSON(w, http.StatusOK, updated)
}

// eventID extracts and validates the ULID path parameter. On failure it
// writes the problem response and returns false.
func (h *EventsHandler) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(pathParam(r, "id"))
	if id == "" {
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", errors.New("missing event id"), h.Env)
		return "", false
	}
	if err := ids.ValidateULID(id); err != nil {
		// An id that can never exist reads as not found to clients
		problem.Write(w, r, http.StatusNotFound, problemNotFound, "Not found", err, h.Env)
		return "", false
	}
	return id, true
}

// writeDomainError maps domain errors onto problem responses.
func (h *EventsHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *events.ValidationError
	switch {
	case errors.As(err, &verr):
		failures := make([]problem.FieldFailure, 0, len(verr.Failures))
		for _, f := range verr.Failures {
			metrics.ValidationFailuresTotal.WithLabelValues(f.Code).Inc()
			failures = append(failures, problem.FieldFailure{
				Field:   f.Field,
				Code:    f.Code,
				Message: f.Message,
			})
		}
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid request", err, h.Env,
			problem.WithFailures(failures))
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problemNotFound, "Not found", err, h.Env)
	case errors.Is(err, events.ErrNotManager):
		problem.Write(w, r, http.StatusForbidden, problemForbidden, "Forbidden", err, h.Env)
	case errors.Is(err, events.ErrAuthenticationRequired):
		problem.Write(w, r, http.StatusUnauthorized, problemUnauthorized, "Authentication required", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", err, h.Env)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}
