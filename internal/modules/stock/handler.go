package stock

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stationeryhq/stationery-backend/internal/modules/auth"
)

// Handler exposes ledger and replenishment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stock-levels", func(r chi.Router) {
		r.Use(auth.RequireActor)
		r.Post("/", h.create)                 // POST   /api/v1/stock-levels
		r.Get("/", h.list)                    // GET    /api/v1/stock-levels?office_id=&item_id=
		r.Get("/{id}", h.get)                 // GET    /api/v1/stock-levels/{id}
		r.Patch("/{id}/threshold", h.setThreshold) // PATCH /api/v1/stock-levels/{id}/threshold
		r.Delete("/{id}", h.delete)           // DELETE /api/v1/stock-levels/{id}
	})
	r.Get("/api/v1/replenishment/suggestions", h.suggestions) // ?office=&min_shortage=
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	l, err := h.service.CreateLevel(r.Context(), req, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrDuplicateLevel):
			code = http.StatusConflict
		case strings.Contains(err.Error(), "invalid"), strings.Contains(err.Error(), "must not"):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, l)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.GetLevel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "stock level not found"})
		return
	}
	respond(w, http.StatusOK, l)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.ListLevels(r.Context(),
		r.URL.Query().Get("office_id"), r.URL.Query().Get("item_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, levels)
}

func (h *Handler) setThreshold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReorderThreshold *int `json:"reorder_threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	err := h.service.SetThreshold(r.Context(), chi.URLParam(r, "id"), req.ReorderThreshold, auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "not found"):
			code = http.StatusNotFound
		case strings.Contains(err.Error(), "must not"):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "threshold updated"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteLevel(r.Context(), chi.URLParam(r, "id"), auth.ActorID(r.Context()))
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrNotEmpty):
			code = http.StatusConflict
		case strings.Contains(err.Error(), "not found"):
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "stock level deleted"})
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	minShortage := 0
	if v := r.URL.Query().Get("min_shortage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "min_shortage must be an integer"})
			return
		}
		minShortage = n
	}
	suggestions, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("office"), minShortage)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, suggestions)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
