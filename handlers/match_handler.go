package handlers

import (
	"net/http"

	"github.com/dartcorner/liveboard/repositories"
)

type MatchHandler struct {
	matchRepo repositories.MatchRepository
}

func NewMatchHandler(matchRepo repositories.MatchRepository) *MatchHandler {
	return &MatchHandler{matchRepo: matchRepo}
}

// ListMatches handles GET /api/tournaments/{id}/matches.
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.matchRepo.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}); err != nil {
		serverErrorResponse(w, err)
	}
}
