package delivery

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stationeryhq/stationery-backend/internal/modules/auth"
)

// Handler exposes delivery HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/deliveries", func(r chi.Router) {
		r.Use(auth.RequireActor)
		r.Post("/", h.create)                 // POST   /api/v1/deliveries
		r.Get("/", h.list)                    // GET    /api/v1/deliveries?status=&office=
		r.Get("/{id}", h.get)                 // GET    /api/v1/deliveries/{id}
		r.Patch("/{id}/status", h.setStatus)  // PATCH  /api/v1/deliveries/{id}/status
		r.Delete("/{id}", h.delete)           // DELETE /api/v1/deliveries/{id}
	})
	r.With(auth.RequireActor).Post("/api/v1/replenishment/raise", h.raise)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := h.service.CreateDelivery(r.Context(), req, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, d)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDelivery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "delivery not found"})
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.service.ListDeliveries(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("office"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown delivery status") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, deliveries)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status    string     `json:"status"`
		ArrivedAt *time.Time `json:"arrived_at,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.ArrivedAt, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			code = http.StatusNotFound
		case strings.Contains(err.Error(), "unknown"):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDelivery(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "delivery deleted"})
}

func (h *Handler) raise(w http.ResponseWriter, r *http.Request) {
	var req RaiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.RaiseFromSuggestions(r.Context(), req, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]int{"created": created})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
