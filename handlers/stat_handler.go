package handlers

import (
	"net/http"

	"github.com/dartcorner/liveboard/services"
)

type StatHandler struct {
	statsService      services.StatsService
	tournamentService services.TournamentService
}

func NewStatHandler(statsService services.StatsService, tournamentService services.TournamentService) *StatHandler {
	return &StatHandler{statsService: statsService, tournamentService: tournamentService}
}

// ListStats handles GET /api/tournaments/{id}/stats.
func (h *StatHandler) ListStats(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	stats, err := h.statsService.ListStats(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}); err != nil {
		serverErrorResponse(w, err)
	}
}

// RefreshStats handles POST /api/tournaments/{id}/stats/refresh. It
// scrapes the statistics page on demand instead of waiting for the
// scheduled cycle.
func (h *StatHandler) RefreshStats(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	t, err := h.tournamentService.GetTournamentByID(r.Context(), tournamentID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	players, err := h.statsService.RefreshStats(r.Context(), t)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}); err != nil {
		serverErrorResponse(w, err)
	}
}
