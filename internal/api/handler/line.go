package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcallaghan/betpool/internal/api/apierr"
	"github.com/jcallaghan/betpool/internal/api/middleware"
	"github.com/jcallaghan/betpool/internal/api/request"
	"github.com/jcallaghan/betpool/internal/api/response"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/line"
	"github.com/jcallaghan/betpool/internal/services/render"
)

// LineHandler handles line lifecycle endpoints
type LineHandler struct {
	lineController *line.Controller
	renderService  *render.Service
}

// NewLineHandler creates a new line handler
func NewLineHandler(lineController *line.Controller, renderService *render.Service) *LineHandler {
	return &LineHandler{
		lineController: lineController,
		renderService:  renderService,
	}
}

// Create handles POST /api/v1/lines
func (h *LineHandler) Create(w http.ResponseWriter, r *http.Request) {
	creator := middleware.MustMemberID(r.Context())

	var req request.CreateLine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	l, err := h.lineController.Create(r.Context(), req.Question, req.Options, creator)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, h.view(r.Context(), l))
}

// Get handles GET /api/v1/lines/{id}
func (h *LineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.LineID(mux.Vars(r)["id"])

	l, err := h.lineController.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.view(r.Context(), l))
}

// List handles GET /api/v1/lines
func (h *LineHandler) List(w http.ResponseWriter, r *http.Request) {
	lines, err := h.lineController.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.Line, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, response.LineFromModel(l))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Lock handles POST /api/v1/lines/{id}/lock
func (h *LineHandler) Lock(w http.ResponseWriter, r *http.Request) {
	id := model.LineID(mux.Vars(r)["id"])

	l, err := h.lineController.Lock(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.view(r.Context(), l))
}

// Resolve handles POST /api/v1/lines/{id}/resolve
func (h *LineHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := model.LineID(mux.Vars(r)["id"])

	var req request.ResolveLine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}

	l, result, err := h.lineController.Resolve(r.Context(), id, req.WinningOption)
	if err != nil {
		WriteError(w, err)
		return
	}

	stakes, err := h.lineController.Stakes(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResolveResponse{
		Line:   response.LineFromModel(l),
		Payout: response.PayoutResultFromModel(result),
		Render: h.renderService.Render(l, stakes, result),
	})
}

// BindMessage handles POST /api/v1/lines/{id}/message
func (h *LineHandler) BindMessage(w http.ResponseWriter, r *http.Request) {
	id := model.LineID(mux.Vars(r)["id"])

	var req request.BindMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.MessageRef == "" {
		WriteError(w, apierr.NewInvalidRequestError("message_ref is required"))
		return
	}

	l, err := h.lineController.BindMessage(r.Context(), id, req.MessageRef)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LineFromModel(l))
}

// view builds the line + render artifact response
func (h *LineHandler) view(ctx context.Context, l *model.Line) response.LineView {
	stakes, err := h.lineController.Stakes(ctx, l.ID)
	if err != nil {
		stakes = nil
	}
	return response.LineView{
		Line:   response.LineFromModel(l),
		Render: h.renderService.Render(l, stakes, nil),
	}
}
