package handlers

import (
	"net/http"
	"time"

	"github.com/dartcorner/liveboard/services"
	"github.com/dartcorner/liveboard/utils"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// CreateTournament handles POST /api/tournaments.
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	t, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, t); err != nil {
		serverErrorResponse(w, err)
	}
}

// GetTournament handles GET /api/tournaments/{id}.
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	t, err := h.tournamentService.GetTournamentByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, t); err != nil {
		serverErrorResponse(w, err)
	}
}

// ListTournaments handles GET /api/tournaments?date=YYYY-MM-DD. Today is
// assumed when no date is given.
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			badRequestResponse(w, err)
			return
		}
		date = parsed
	}

	tournaments, err := h.tournamentService.ListTournamentsByDate(r.Context(), date)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}); err != nil {
		serverErrorResponse(w, err)
	}
}

// UpdateTournament handles PUT /api/tournaments/{id}.
func (h *TournamentHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	t, err := h.tournamentService.UpdateTournament(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, t); err != nil {
		serverErrorResponse(w, err)
	}
}

// DeleteTournament handles DELETE /api/tournaments/{id}.
func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), id); err != nil {
		mapServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "tournament deleted"}); err != nil {
		serverErrorResponse(w, err)
	}
}
