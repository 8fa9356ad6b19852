package handler

import (
	"encoding/json"
	"net/http"

	"github.com/REDDITARUN/helix/internal/api/response"
	"github.com/REDDITARUN/helix/internal/chat"
	"github.com/REDDITARUN/helix/internal/rag"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatHandler exposes the conversation endpoints
type ChatHandler struct {
	chatService *chat.Service
	ragService  *rag.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service, ragService *rag.Service) *ChatHandler {
	return &ChatHandler{chatService: chatService, ragService: ragService}
}

type startRequest struct {
	SessionID string `json:"session_id"`
}

// Start creates a new session seeded with the system directive. When a
// session_id is supplied the existing session is resumed instead; unknown
// ids are a 404, never silently re-created.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			response.BadRequest(w, "invalid session ID")
			return
		}
		session, err := h.chatService.Resume(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		response.OK(w, map[string]any{"session_id": session.ID, "resumed": true})
		return
	}

	session, err := h.chatService.StartSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, map[string]any{"session_id": session.ID})
}

type postMessageRequest struct {
	Message string `json:"message"`
}

// PostMessage runs one chat turn and returns the reply or routed action
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		response.BadRequest(w, "missing 'message' in request body")
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, reply)
}

// Augment injects retrieved document context into the transcript
func (h *ChatHandler) Augment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	status, err := h.ragService.Augment(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, status)
}

// History returns the stored transcript in creation order
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	turns, err := h.chatService.Transcript(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, turns)
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.BadRequest(w, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
