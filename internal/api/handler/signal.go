package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcallaghan/betpool/internal/api/apierr"
	"github.com/jcallaghan/betpool/internal/api/request"
	"github.com/jcallaghan/betpool/internal/api/response"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/services/stake"
)

// SignalHandler handles inbound signal add/remove events
type SignalHandler struct {
	reconciler *stake.Reconciler
	ledger     *ledger.Service
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(reconciler *stake.Reconciler, ledger *ledger.Service) *SignalHandler {
	return &SignalHandler{
		reconciler: reconciler,
		ledger:     ledger,
	}
}

// Add handles POST /api/v1/lines/{id}/signals
func (h *SignalHandler) Add(w http.ResponseWriter, r *http.Request) {
	lineID := model.LineID(mux.Vars(r)["id"])

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	placed, err := h.reconciler.OnSignalAdded(r.Context(), lineID, model.MemberID(req.MemberID), req.DisplayName, req.Symbol)
	if err != nil {
		WriteError(w, err)
		return
	}

	if placed == nil {
		// Unrecognized symbol: expected noise, not an error
		response.JSON(w, http.StatusOK, response.SignalResponse{Outcome: response.SignalOutcomeIgnored})
		return
	}

	response.JSON(w, http.StatusCreated, h.outcome(r, response.SignalOutcomePlaced, placed))
}

// Remove handles DELETE /api/v1/lines/{id}/signals
func (h *SignalHandler) Remove(w http.ResponseWriter, r *http.Request) {
	lineID := model.LineID(mux.Vars(r)["id"])

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	retired, err := h.reconciler.OnSignalRemoved(r.Context(), lineID, model.MemberID(req.MemberID), req.Symbol)
	if err != nil {
		WriteError(w, err)
		return
	}

	if retired == nil {
		response.JSON(w, http.StatusOK, response.SignalResponse{Outcome: response.SignalOutcomeIgnored})
		return
	}

	response.JSON(w, http.StatusOK, h.outcome(r, response.SignalOutcomeWithdrawn, retired))
}

func (h *SignalHandler) decode(w http.ResponseWriter, r *http.Request) (request.Signal, bool) {
	var req request.Signal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return req, false
	}
	if req.MemberID == "" || req.Symbol == "" {
		WriteError(w, apierr.NewInvalidRequestError("member_id and symbol are required"))
		return req, false
	}
	return req, true
}

func (h *SignalHandler) outcome(r *http.Request, outcome string, s *model.Stake) response.SignalResponse {
	resp := response.SignalResponse{
		Outcome: outcome,
		Option:  s.Option,
	}
	if member, err := h.ledger.GetMember(r.Context(), s.MemberID); err == nil {
		resp.Balance = &member.Balance
	}
	return resp
}
