package domain

// RegistrationRequest is the transient value submitted by an HR signup form.
// It is produced and consumed within a single workflow call; it is never
// persisted as its own row.
type RegistrationRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	OrganizationName  string `json:"organization_name"`
	OrganizationEmail string `json:"organization_email"`
	JobTitle          string `json:"job_title"`
	LinkedinURL       string `json:"linkedin_url,omitempty"`
	CompanyWebsite    string `json:"company_website,omitempty"`
	Message           string `json:"message,omitempty"`
}

type RegistrationAction string

const (
	RegistrationActionContactSupport  RegistrationAction = "contact_support"
	RegistrationActionVerifyEmail     RegistrationAction = "verify_email"
	RegistrationActionWaitApproval    RegistrationAction = "wait_approval"
	RegistrationActionGuestAssignment RegistrationAction = "guest_assignment"
)

// RegistrationResult is the structured outcome returned by every branch of
// the registration workflow.
type RegistrationResult struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Action    RegistrationAction `json:"action,omitempty"`
	Details   string             `json:"details,omitempty"`
	NextSteps []string           `json:"next_steps,omitempty"`
	Error     string             `json:"error,omitempty"`
}
