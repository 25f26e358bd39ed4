package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ez2source-sys/ez2source-sub001/internal/service"
)

// DecisionHandler triggers candidate decision notifications.
type DecisionHandler struct {
	decisions service.DecisionService
}

func NewDecisionHandler(decisions service.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisions: decisions}
}

func (h *DecisionHandler) HandleNotifyDecision(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	feedbackID, err := strconv.ParseInt(mux.Vars(r)["feedbackID"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}

	sent := h.decisions.NotifyDecision(r.Context(), int32(feedbackID), claims.UserID)
	respondJSON(w, http.StatusOK, map[string]any{"success": sent})
}

func (h *DecisionHandler) HandleNotifyBulk(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		FeedbackIDs []int32 `json:"feedback_ids"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results := h.decisions.NotifyBulk(r.Context(), body.FeedbackIDs, claims.UserID)
	respondJSON(w, http.StatusOK, results)
}

// EmailAdminHandler exposes delivery stats and preference management.
type EmailAdminHandler struct {
	email service.EmailService
}

func NewEmailAdminHandler(email service.EmailService) *EmailAdminHandler {
	return &EmailAdminHandler{email: email}
}

func (h *EmailAdminHandler) HandleDeliveryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.email.DeliveryStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load delivery stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *EmailAdminHandler) HandleSetPreference(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		NotificationType string `json:"notification_type"`
		Enabled          bool   `json:"enabled"`
	}
	if err := decodeJSON(r, &body); err != nil || body.NotificationType == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.email.SetPreference(r.Context(), claims.UserID, body.NotificationType, body.Enabled); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save preference")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SummaryHandler serves AI feedback summaries.
type SummaryHandler struct {
	summaries service.SummaryService
}

func NewSummaryHandler(summaries service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	responseID, err := strconv.ParseInt(mux.Vars(r)["responseID"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid response id")
		return
	}

	summary, err := h.summaries.GenerateSummary(r.Context(), int32(responseID), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			respondError(w, http.StatusForbidden, "Permission denied")
			return
		}
		respondError(w, http.StatusNotFound, "Response not found")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *SummaryHandler) HandleGetBatchSummaries(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	interviewID, err := strconv.ParseInt(mux.Vars(r)["interviewID"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid interview id")
		return
	}

	summaries, err := h.summaries.GenerateBatchSummaries(r.Context(), int32(interviewID), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			respondError(w, http.StatusForbidden, "Permission denied")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to generate summaries")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}
