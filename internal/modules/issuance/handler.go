package issuance

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stationeryhq/stationery-backend/internal/modules/auth"
	"github.com/stationeryhq/stationery-backend/internal/modules/stock"
)

// Handler exposes issue and return HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/issues", func(r chi.Router) {
		r.Use(auth.RequireActor)
		r.Post("/", h.createIssue)                            // POST /api/v1/issues
		r.Get("/{id}", h.getIssue)                            // GET  /api/v1/issues/{id}
		r.Get("/by-request/{requestId}", h.getIssueByRequest) // GET  /api/v1/issues/by-request/{requestId}
	})
	r.Route("/api/v1/returns", func(r chi.Router) {
		r.Use(auth.RequireActor)
		r.Post("/", h.createReturn)                        // POST /api/v1/returns
		r.Get("/{id}", h.getReturn)                        // GET  /api/v1/returns/{id}
		r.Get("/by-issue/{issueId}", h.listReturnsByIssue) // GET  /api/v1/returns/by-issue/{issueId}
	})
}

func (h *Handler) createIssue(w http.ResponseWriter, r *http.Request) {
	var in CreateIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	issue, err := h.service.CreateIssue(r.Context(), in, auth.ActorID(r.Context()))
	if err != nil {
		// A duplicate issue is idempotent success: resolve to the issue
		// that already exists instead of failing the retry.
		if errors.Is(err, ErrAlreadyIssued) {
			existing, lookupErr := h.service.GetIssueByRequest(r.Context(), in.RequestID)
			if lookupErr != nil {
				respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
				return
			}
			respond(w, http.StatusOK, existing)
			return
		}
		h.fail(w, err)
		return
	}
	respond(w, http.StatusCreated, issue)
}

func (h *Handler) createReturn(w http.ResponseWriter, r *http.Request) {
	var in CreateReturnInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ret, err := h.service.CreateReturn(r.Context(), in, auth.ActorID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusCreated, ret)
}

func (h *Handler) getIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.service.GetIssue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "issue not found"})
		return
	}
	respond(w, http.StatusOK, issue)
}

func (h *Handler) getIssueByRequest(w http.ResponseWriter, r *http.Request) {
	issue, err := h.service.GetIssueByRequest(r.Context(), chi.URLParam(r, "requestId"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "issue not found"})
		return
	}
	respond(w, http.StatusOK, issue)
}

func (h *Handler) getReturn(w http.ResponseWriter, r *http.Request) {
	ret, err := h.service.GetReturn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "return not found"})
		return
	}
	respond(w, http.StatusOK, ret)
}

func (h *Handler) listReturnsByIssue(w http.ResponseWriter, r *http.Request) {
	returns, err := h.service.ListReturnsByIssue(r.Context(), chi.URLParam(r, "issueId"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if returns == nil {
		returns = []*Return{}
	}
	respond(w, http.StatusOK, returns)
}

// fail maps engine errors onto HTTP statuses. Unexpected failures are
// logged and reported generically so internal detail never leaks.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrIssueNotFound),
		errors.Is(err, ErrOfficeNotFound),
		errors.Is(err, stock.ErrRowNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrRequestNotApproved),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrExceedsIssued),
		errors.Is(err, stock.ErrInsufficientStock):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case strings.Contains(err.Error(), "invalid"):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("issuance: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
