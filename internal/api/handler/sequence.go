package handler

import (
	"encoding/json"
	"net/http"

	"github.com/REDDITARUN/helix/internal/api/response"
	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/REDDITARUN/helix/internal/sequence"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SequenceHandler exposes sequence generation and editing endpoints
type SequenceHandler struct {
	service  *sequence.Service
	validate *validator.Validate
}

// NewSequenceHandler creates a new sequence handler
func NewSequenceHandler(service *sequence.Service) *SequenceHandler {
	return &SequenceHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Generate materializes a fresh 4-part sequence set for the session
func (h *SequenceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var gctx domain.GenerationContext
	if err := json.NewDecoder(r.Body).Decode(&gctx); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(gctx); err != nil {
		response.BadRequest(w, "missing required generation fields: "+err.Error())
		return
	}

	items, err := h.service.Generate(r.Context(), sessionID, gctx)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{"sequences": items})
}

type modifyRequest struct {
	Instruction string `json:"instruction"`
}

// Modify rewrites the current sequence set per the user's instruction
func (h *SequenceHandler) Modify(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req modifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	items, err := h.service.Modify(r.Context(), sessionID, req.Instruction)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{"sequences": items})
}

// List returns the session's current sequence set
func (h *SequenceHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{"sequences": items})
}

type updateItemRequest struct {
	Content string `json:"content"`
}

// UpdateItem edits a single sequence item's content in place
func (h *SequenceHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "sequenceID"))
	if err != nil {
		response.BadRequest(w, "invalid sequence ID")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	item, err := h.service.EditItem(r.Context(), itemID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, item)
}
