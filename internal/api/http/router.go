package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ez2source-sys/ez2source-sub001/internal/security"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
	"github.com/ez2source-sys/ez2source-sub001/internal/validate"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Registration service.RegistrationService
	Decisions    service.DecisionService
	Messaging    service.MessagingService
	Summaries    service.SummaryService
	Email        service.EmailService
	Validator    *validate.Engine
	TokenManager security.TokenManager
}

// NewRouter wires all HTTP routes. Registration and form validation are
// public; everything else requires a valid access token.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()

	registration := NewRegistrationHandler(h.Registration, h.Validator)
	validation := NewValidationHandler(h.Validator)
	messaging := NewMessagingHandler(h.Messaging)
	decisions := NewDecisionHandler(h.Decisions)
	summaries := NewSummaryHandler(h.Summaries)
	emailAdmin := NewEmailAdminHandler(h.Email)

	router.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	router.HandleFunc("/api/v1/registration/hr", registration.HandleHRRegistration).Methods("POST")
	router.HandleFunc("/api/v1/validate", validation.HandleValidateForm).Methods("POST")

	authed := router.PathPrefix("/api/v1").Subrouter()
	authed.Use(AuthMiddleware(h.TokenManager))

	authed.HandleFunc("/messages", messaging.HandleSendMessage).Methods("POST")
	authed.HandleFunc("/conversations", messaging.HandleGetConversations).Methods("GET")
	authed.HandleFunc("/conversations/{partnerID:[0-9]+}/messages", messaging.HandleGetMessages).Methods("GET")

	authed.HandleFunc("/feedback/{feedbackID:[0-9]+}/notify", decisions.HandleNotifyDecision).Methods("POST")
	authed.HandleFunc("/feedback/notify-bulk", decisions.HandleNotifyBulk).Methods("POST")

	authed.HandleFunc("/responses/{responseID:[0-9]+}/summary", summaries.HandleGetSummary).Methods("GET")
	authed.HandleFunc("/interviews/{interviewID:[0-9]+}/summaries", summaries.HandleGetBatchSummaries).Methods("GET")

	authed.HandleFunc("/notifications/stats", emailAdmin.HandleDeliveryStats).Methods("GET")
	authed.HandleFunc("/notifications/preferences", emailAdmin.HandleSetPreference).Methods("PUT")

	return router
}
