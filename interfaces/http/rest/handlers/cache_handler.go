package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"kusina-backend/infrastructure/cache"
	"kusina-backend/pkg/common"
	"kusina-backend/pkg/notify"
	"kusina-backend/pkg/utils"
)

// CacheHandler exposes the cache diagnostic surface: per-store stats,
// a full clear, a targeted refresh, and a server-sent event stream of
// write operations for dashboard clients that refetch on change.
type CacheHandler struct {
	router   *cache.Router
	notifier *notify.Notifier
	logger   *zap.Logger
}

// NewCacheHandler creates a cache diagnostics handler.
func NewCacheHandler(router *cache.Router, notifier *notify.Notifier, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{router: router, notifier: notifier, logger: logger}
}

// Stats reports entry counts, hit rates, and per-entry ages for every
// store. Reading stats never mutates store state, so repeated polling
// is safe.
// GET /api/v1/debug/cache
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stores := h.router.Stores()
	stats := make([]cache.Stats, 0, len(stores))
	for _, st := range stores {
		stats = append(stats, st.Stats())
	}
	common.RespondJSON(w, http.StatusOK, stats)
}

// Clear wipes every store.
// DELETE /api/v1/debug/cache
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.router.ClearAll()
	h.logger.Info("all cache stores cleared")
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// RefreshRequest is the request body for a targeted refresh.
type RefreshRequest struct {
	Patterns []string `json:"patterns" validate:"required,min=1,max=20,dive,min=1,max=100"`
}

// Refresh purges the given key patterns from every store so the next
// read refetches from the backend.
// POST /api/v1/debug/cache/refresh
func (h *CacheHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	removed := h.router.ForceRefresh(req.Patterns)
	h.logger.Info("cache force refresh",
		zap.Strings("patterns", req.Patterns),
		zap.Int("removed", removed),
	)
	common.RespondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// Events streams write-operation names as server-sent events until the
// client disconnects. Missed events are harmless: clients refetch the
// affected views, and the next poll or TTL expiry converges anyway.
// GET /api/v1/events
func (h *CacheHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := h.notifier.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case op, open := <-events:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: operation\ndata: %s\n\n", op)
			flusher.Flush()
		}
	}
}
