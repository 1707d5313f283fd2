package handler

import (
	"encoding/json"
	"net/http"

	"courseapp/internal/api/middleware"
	"courseapp/internal/app/service"
	"courseapp/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(cs *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: cs}
}

func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.sendMessage)
	r.Get("/", h.history)
}

func (h *ChatHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	message, err := h.chatService.Send(r.Context(), claims.UserID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, message)
}

// history returns the caller's own chat history. The optional userId query
// parameter is accepted for compatibility but must name the verified
// identity; the store query is never scoped by a client-supplied id.
func (h *ChatHandler) history(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	requestedUserID := r.URL.Query().Get("userId")
	messages, err := h.chatService.History(r.Context(), claims.UserID, requestedUserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, messages)
}
