package http

import (
	"net/http"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
	"github.com/ez2source-sys/ez2source-sub001/internal/validate"
)

// RegistrationHandler serves the HR signup endpoint.
type RegistrationHandler struct {
	registration service.RegistrationService
	validator    *validate.Engine
}

func NewRegistrationHandler(registration service.RegistrationService, validator *validate.Engine) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, validator: validator}
}

func (h *RegistrationHandler) HandleHRRegistration(w http.ResponseWriter, r *http.Request) {
	var req domain.RegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := map[string]string{
		"first_name":        req.FirstName,
		"last_name":         req.LastName,
		"email":             req.Email,
		"phone":             req.Phone,
		"organization_name": req.OrganizationName,
	}
	rules := validate.Ruleset{
		"first_name":        validate.MustParseRules("required", "min_length:2", "max_length:50"),
		"last_name":         validate.MustParseRules("required", "min_length:2", "max_length:50"),
		"email":             validate.MustParseRules("required", "email"),
		"phone":             validate.MustParseRules("required", "phone"),
		"organization_name": validate.MustParseRules("required", "min_length:2", "max_length:100"),
	}
	validation, err := h.validator.Validate(r.Context(), form, rules)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "validation failed")
		return
	}
	if !validation.Valid {
		respondJSON(w, http.StatusUnprocessableEntity, validation)
		return
	}

	result := h.registration.CreateHRRegistrationRequest(r.Context(), &req)
	status := http.StatusOK
	if !result.Success && result.Action == "" {
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, result)
}

// ValidationHandler exposes form validation for client-side previews.
type ValidationHandler struct {
	validator *validate.Engine
}

func NewValidationHandler(validator *validate.Engine) *ValidationHandler {
	return &ValidationHandler{validator: validator}
}

func (h *ValidationHandler) HandleValidateForm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FormType string            `json:"form_type"`
		Fields   map[string]string `json:"fields"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.validator.ValidateForm(r.Context(), body.Fields, validate.FormType(body.FormType))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "validation failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
