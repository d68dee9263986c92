package request

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stationeryhq/stationery-backend/internal/modules/auth"
)

// Handler exposes request HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/requests", func(r chi.Router) {
		r.Use(auth.RequireActor)
		r.Post("/", h.create)              // POST  /api/v1/requests
		r.Get("/", h.list)                 // GET   /api/v1/requests?status=&office=
		r.Get("/{id}", h.get)              // GET   /api/v1/requests/{id}
		r.Patch("/{id}/status", h.decide)  // PATCH /api/v1/requests/{id}/status
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.CreateRequest(r.Context(), req, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "request not found"})
		return
	}
	respond(w, http.StatusOK, req)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListRequests(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("office"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown request status") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, requests)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	decided, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), req, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		switch {
		case strings.Contains(msg, "not found"):
			code = http.StatusNotFound
		case strings.Contains(msg, "already"):
			code = http.StatusUnprocessableEntity
		case strings.Contains(msg, "unknown"), strings.Contains(msg, "must be"):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusOK, decided)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
