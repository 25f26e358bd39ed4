package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
)

const defaultPageSize = 50

type MessagingHandler struct {
	messaging service.MessagingService
}

func NewMessagingHandler(messaging service.MessagingService) *MessagingHandler {
	return &MessagingHandler{messaging: messaging}
}

func (h *MessagingHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		RecipientID          int32                  `json:"recipient_id"`
		Subject              string                 `json:"subject"`
		Content              string                 `json:"content"`
		Type                 domain.MessageType     `json:"message_type"`
		Priority             domain.MessagePriority `json:"priority"`
		RelatedJobID         *int32                 `json:"related_job_id"`
		RelatedApplicationID *int32                 `json:"related_application_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	msg := &domain.Message{
		SenderID:             claims.UserID,
		RecipientID:          body.RecipientID,
		Subject:              body.Subject,
		Content:              body.Content,
		Type:                 body.Type,
		Priority:             body.Priority,
		RelatedJobID:         body.RelatedJobID,
		RelatedApplicationID: body.RelatedApplicationID,
	}

	sent, err := h.messaging.SendMessage(r.Context(), msg)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			respondError(w, http.StatusForbidden, "Permission denied")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"message_id": sent.ID,
		"sent_at":    sent.CreatedOn,
	})
}

func (h *MessagingHandler) HandleGetConversations(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conversations, err := h.messaging.GetConversations(r.Context(), claims.UserID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load conversations")
		return
	}
	respondJSON(w, http.StatusOK, conversations)
}

func (h *MessagingHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerID"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	messages, err := h.messaging.GetMessages(r.Context(), claims.UserID, int32(partnerID), queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func queryLimit(r *http.Request) int32 {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			return int32(n)
		}
	}
	return defaultPageSize
}
