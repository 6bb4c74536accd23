package httpadapter

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// handleBid serves one banner for the requesting client. Category request
// keys arrive as repeated `cat` query parameters; the client identity is
// taken from the transport (IP and User-Agent). On success the banner
// text is returned as plain text. Both "no match" and "already shown"
// answer 204 with an empty body; a missing cat parameter is a 400 and an
// engine failure a 500.
func (h *Handler) handleBid(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()["cat"]
	client := domain.ClientKey{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	}

	res, err := h.bids.Bid(r.Context(), client, keys)
	if errors.Is(err, port.ErrNoCategories) {
		http.Error(w, "at least one cat parameter is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("bid error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if res.Status != port.StatusShown {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err = w.Write([]byte(res.Text)); err != nil {
		h.logger.Error("write response error", slog.Any("error", err))
	}
}

// clientIP extracts the requester address, preferring the first hop of
// X-Forwarded-For when the service runs behind a proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
