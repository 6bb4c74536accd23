package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

type categoryRequest struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	RequestKey string `json:"request_key"`
}

type categoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	RequestKey string `json:"request_key"`
}

// handleCategoryAdd creates a category. A name or request-key collision
// with an active category answers 409.
func (h *Handler) handleCategoryAdd(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := h.categories.CreateCategory(r.Context(), domain.Category{Name: req.Name, RequestKey: req.RequestKey})
	if err != nil {
		h.writeCategoryError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	err := h.categories.UpdateCategory(r.Context(), domain.Category{ID: req.ID, Name: req.Name, RequestKey: req.RequestKey})
	if err != nil {
		h.writeCategoryError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "updated"})
}

// handleCategoryDelete soft-deletes a category. When active banners still
// depend on it the request must carry cascade=true, otherwise it answers
// 409 and nothing is deleted.
func (h *Handler) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	cascade, _ := strconv.ParseBool(r.URL.Query().Get("cascade"))
	if err = h.categories.DeleteCategory(r.Context(), id, cascade); err != nil {
		h.writeCategoryError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleCategorySearch(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.SearchCategories(r.Context(), r.URL.Query().Get("name"))
	if errors.Is(err, port.ErrEmptyQuery) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.logger.Error("category search error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(categories) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name, RequestKey: c.RequestKey})
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *Handler) writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrCategoryExists), errors.Is(err, port.ErrDependentBanners):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, port.ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("category catalog error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
