package handlers

import (
	"net/http"

	"github.com/dartcorner/liveboard/models"
	"github.com/dartcorner/liveboard/repositories"
)

type GroupHandler struct {
	groupRepo      repositories.GroupRepository
	groupMatchRepo repositories.GroupMatchRepository
}

func NewGroupHandler(groupRepo repositories.GroupRepository, groupMatchRepo repositories.GroupMatchRepository) *GroupHandler {
	return &GroupHandler{groupRepo: groupRepo, groupMatchRepo: groupMatchRepo}
}

type groupWithMatches struct {
	models.Group
	Matches []models.GroupMatch `json:"matches"`
}

// ListGroups handles GET /api/tournaments/{id}/groups. Each group is
// returned together with its round-robin matches.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	groups, err := h.groupRepo.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	out := make([]groupWithMatches, 0, len(groups))
	for _, g := range groups {
		matches, err := h.groupMatchRepo.ListByGroup(r.Context(), g.ID)
		if err != nil {
			serverErrorResponse(w, err)
			return
		}
		out = append(out, groupWithMatches{Group: g, Matches: matches})
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": out}); err != nil {
		serverErrorResponse(w, err)
	}
}
