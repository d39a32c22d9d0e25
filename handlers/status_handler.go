package handlers

import (
	"net/http"

	"github.com/dartcorner/liveboard/services"
)

type StatusHandler struct {
	poller *services.Poller
}

func NewStatusHandler(poller *services.Poller) *StatusHandler {
	return &StatusHandler{poller: poller}
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}); err != nil {
		serverErrorResponse(w, err)
	}
}

// ScraperStatus handles GET /api/scraper/status: aggregate counters for
// the running scrape loop.
func (h *StatusHandler) ScraperStatus(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.poller.Stats()); err != nil {
		serverErrorResponse(w, err)
	}
}
