package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jcallaghan/betpool/internal/api/response"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/stats"
)

// MemberHandler handles member stats endpoints
type MemberHandler struct {
	statsService *stats.Service
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(statsService *stats.Service) *MemberHandler {
	return &MemberHandler{
		statsService: statsService,
	}
}

// Stats handles GET /api/v1/members/{id}/stats
func (h *MemberHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := model.MemberID(mux.Vars(r)["id"])

	member, err := h.statsService.MemberStats(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MemberFromModel(member))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *MemberHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	members, err := h.statsService.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.LeaderboardResponse{Members: make([]response.Member, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, response.MemberFromModel(m))
	}
	response.JSON(w, http.StatusOK, resp)
}
