package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"banner-engine/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the use cases and a
// structured logger and registers all routes on a chi.Router.
type Handler struct {
	bids       port.BidUseCase
	banners    port.BannerUseCase
	categories port.CategoryUseCase
	logger     *slog.Logger
	router     chi.Router
}

// NewHandler creates a handler with all routes configured. A positive
// rateLimit applies an httprate per-IP limiter to the bid endpoint.
func NewHandler(bids port.BidUseCase, banners port.BannerUseCase, categories port.CategoryUseCase, logger *slog.Logger, rateLimit int, ratePeriod time.Duration) *Handler {
	h := &Handler{bids: bids, banners: banners, categories: categories, logger: logger}
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if rateLimit > 0 {
			r.Use(httprate.LimitByIP(rateLimit, ratePeriod))
		}
		r.Get("/bid", h.handleBid)
	})

	r.Route("/banners", func(r chi.Router) {
		r.Post("/add", h.handleBannerAdd)
		r.Put("/update", h.handleBannerUpdate)
		r.Delete("/delete/{id}", h.handleBannerDelete)
		r.Get("/search", h.handleBannerSearch)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Post("/add", h.handleCategoryAdd)
		r.Put("/update", h.handleCategoryUpdate)
		r.Delete("/delete/{id}", h.handleCategoryDelete)
		r.Get("/search", h.handleCategorySearch)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
