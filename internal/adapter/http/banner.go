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

type bannerRequest struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Text        string  `json:"text"`
	Price       int64   `json:"price"`
	CategoryIDs []int64 `json:"category_ids"`
}

type bannerResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Text        string  `json:"text"`
	Price       int64   `json:"price"`
	CategoryIDs []int64 `json:"category_ids"`
}

func (req bannerRequest) toDomain() domain.Banner {
	return domain.Banner{
		ID:          req.ID,
		Name:        req.Name,
		Text:        req.Text,
		Price:       req.Price,
		CategoryIDs: req.CategoryIDs,
	}
}

// handleBannerAdd creates a banner. A name collision with an active
// banner answers 409; an unknown or inactive referenced category 404.
func (h *Handler) handleBannerAdd(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	id, err := h.banners.CreateBanner(r.Context(), req.toDomain())
	if err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]int64{"id": id})
}

// handleBannerUpdate replaces name, text, price and category set of an
// existing banner.
func (h *Handler) handleBannerUpdate(w http.ResponseWriter, r *http.Request) {
	var req bannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.banners.UpdateBanner(r.Context(), req.toDomain()); err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "updated"})
}

// handleBannerDelete soft-deletes a banner. An absent or already inactive
// banner answers 404.
func (h *Handler) handleBannerDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err = h.banners.DeleteBanner(r.Context(), id); err != nil {
		h.writeBannerError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleBannerSearch finds active banners by case-insensitive name
// substring. A blank name or an empty result answers 204.
func (h *Handler) handleBannerSearch(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.SearchBanners(r.Context(), r.URL.Query().Get("name"))
	if errors.Is(err, port.ErrEmptyQuery) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.logger.Error("banner search error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(banners) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	out := make([]bannerResponse, 0, len(banners))
	for _, b := range banners {
		out = append(out, bannerResponse{
			ID:          b.ID,
			Name:        b.Name,
			Text:        b.Text,
			Price:       b.Price,
			CategoryIDs: b.CategoryIDs,
		})
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *Handler) writeBannerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrBannerExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, port.ErrBannerNotFound), errors.Is(err, port.ErrCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("banner catalog error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response error", slog.Any("error", err))
	}
}
