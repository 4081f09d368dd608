package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptpilot/promptpilot-go/ai"
	"github.com/promptpilot/promptpilot-go/store"
)

// AIHandler handles HTTP requests for chat sessions.
type AIHandler struct {
	service *ai.Service
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{service: svc}
}

// CreateSessionRequest is the payload for POST /api/create-session/{service}/{serviceItem}.
type CreateSessionRequest struct {
	UserEmail string `json:"userEmail"`
}

// AskRequest is the payload for POST /api/ask/{sessionId}.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// HandleCreateSession handles POST /api/create-session/{service}/{serviceItem}.
func (h *AIHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	serviceItem := chi.URLParam(r, "serviceItem")

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	sessionID, message, err := h.service.CreateSession(r.Context(), service, serviceItem, req.UserEmail)
	if err != nil {
		if errors.Is(err, ai.ErrUnknownServiceItem) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("failed to create session"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": sessionID,
		"message":   message,
	})
}

// HandleAsk handles POST /api/ask/{sessionId}.
func (h *AIHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	message, err := h.service.ContinueSession(r.Context(), sessionID, req.Prompt)
	if err != nil {
		if errors.Is(err, store.ErrChatSessionNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse("session not found"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("failed to get AI response"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(message))
}

// HandleGetSessions handles GET /api/get-sessions?userEmail=...
func (h *AIHandler) HandleGetSessions(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("userEmail is required"))
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), userEmail)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// HandleGetSession handles GET /api/get-session/{sessionId}.
func (h *AIHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrChatSessionNotFound) {
			writeJSON(w, http.StatusBadRequest, errorResponse("session not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, session)
}
