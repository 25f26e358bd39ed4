package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ez2source-sys/ez2source-sub001/internal/config"
	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
	"github.com/ez2source-sys/ez2source-sub001/internal/security"
	"github.com/ez2source-sys/ez2source-sub001/internal/validate"
)

// Public email providers that never count as a corporate domain.
var publicEmailProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"outlook.com": true,
	"hotmail.com": true,
}

const guestAdminPassword = "GuestAdmin2025!"

type registrationService struct {
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	email    EmailService
	platform config.PlatformConfig
}

func NewRegistrationService(users repository.UserRepository, orgs repository.OrganizationRepository,
	email EmailService, platform config.PlatformConfig) RegistrationService {
	return &registrationService{
		users:    users,
		orgs:     orgs,
		email:    email,
		platform: platform,
	}
}

// CreateHRRegistrationRequest runs the approval state machine for one HR
// signup. Unexpected store failures are converted to a generic failure
// result; the caller never sees a raw error.
func (s *registrationService) CreateHRRegistrationRequest(ctx context.Context, req *domain.RegistrationRequest) *domain.RegistrationResult {
	logger.EnterMethod("CreateHRRegistrationRequest", "email", req.Email, "organization", req.OrganizationName)

	result, err := s.process(ctx, req)
	if err != nil {
		logger.ExitMethodWithError("CreateHRRegistrationRequest", err, "email", req.Email)
		return &domain.RegistrationResult{
			Success: false,
			Message: "Registration request failed due to system error",
			Error:   err.Error(),
		}
	}
	logger.ExitMethod("CreateHRRegistrationRequest", "action", result.Action)
	return result
}

func (s *registrationService) process(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	org, err := s.orgs.GetByName(ctx, req.OrganizationName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.handleNewOrganization(ctx, req)
		}
		return nil, err
	}
	return s.handleExistingOrganization(ctx, org, req)
}

func (s *registrationService) handleExistingOrganization(ctx context.Context, org *domain.Organization, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	existing, err := s.users.GetByEmailAndOrg(ctx, req.Email, org.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return &domain.RegistrationResult{
			Success: false,
			Message: "An account with this email already exists for this organization",
			Action:  domain.RegistrationActionContactSupport,
		}, nil
	}

	emailDomain := ""
	if at := strings.LastIndex(req.Email, "@"); at >= 0 {
		emailDomain = strings.ToLower(req.Email[at+1:])
	}
	if !verifyEmailDomain(emailDomain, org.Name) {
		return &domain.RegistrationResult{
			Success: false,
			Message: "Email domain does not match organization domain",
			Action:  domain.RegistrationActionVerifyEmail,
			Details: "Please use your official company email address",
		}, nil
	}

	admins, err := s.users.ListByOrgAndRole(ctx, org.ID, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		return s.requestSuperAdminApproval(ctx, org, req)
	}
	return s.requestOrgAdminApproval(ctx, org, admins, req)
}

// verifyEmailDomain applies the corporate-domain heuristic: public
// providers fail outright, otherwise the organization name's normalized
// tokens must appear within the normalized domain.
func verifyEmailDomain(emailDomain, orgName string) bool {
	if publicEmailProviders[emailDomain] {
		return false
	}

	normalizedOrg := strings.NewReplacer(" ", "", "-", "").Replace(strings.ToLower(orgName))
	normalizedDomain := strings.NewReplacer(".", "", "-", "").Replace(strings.ToLower(emailDomain))

	if strings.Contains(normalizedDomain, normalizedOrg) {
		return true
	}
	for _, part := range strings.Fields(strings.ToLower(orgName)) {
		if len(part) > 3 && strings.Contains(normalizedDomain, part) {
			return true
		}
	}
	return false
}

func approvalRequestBody(org *domain.Organization, req *domain.RegistrationRequest, intro string) string {
	return fmt.Sprintf(`%s

Organization: %s
Applicant: %s %s
Email: %s
Phone: %s
Job Title: %s
LinkedIn: %s
Message: %s

Please review and approve/reject this request in the admin panel.`,
		intro, org.Name, req.FirstName, req.LastName, req.Email, req.Phone, req.JobTitle,
		orNotProvided(req.LinkedinURL), orNotProvided(req.Message))
}

func (s *registrationService) requestSuperAdminApproval(ctx context.Context, org *domain.Organization, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	superAdmin, err := s.users.FirstByRole(ctx, domain.UserRoleSuperAdmin)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if superAdmin != nil {
		subject := fmt.Sprintf("HR Registration Request - %s", org.Name)
		body := approvalRequestBody(org, req, "New HR registration request requires your approval:")
		s.email.Send(ctx, superAdmin.Email, subject, "notification", map[string]any{
			"message":    body,
			"user_name":  "Super Admin",
			"title":      "HR Registration Request",
			"action_url": s.platform.URL + "/admin",
		}, &superAdmin.ID)
	}

	return &domain.RegistrationResult{
		Success: true,
		Message: "Registration request submitted for super admin approval",
		Action:  domain.RegistrationActionWaitApproval,
		Details: "Your request has been sent to the platform administrators for review.",
		NextSteps: []string{
			"Wait for super admin review",
			"Receive approval/rejection notification",
			"If approved, receive login credentials",
		},
	}, nil
}

func (s *registrationService) requestOrgAdminApproval(ctx context.Context, org *domain.Organization, admins []domain.User, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	subject := fmt.Sprintf("HR Registration Request - %s", org.Name)
	body := approvalRequestBody(org, req, "New HR registration request for your organization:")

	for i := range admins {
		admin := &admins[i]
		userName := admin.FirstName
		if userName == "" {
			userName = "Admin"
		}
		s.email.Send(ctx, admin.Email, subject, "notification", map[string]any{
			"message":    body,
			"user_name":  userName,
			"title":      "HR Registration Request",
			"action_url": s.platform.URL + "/admin",
		}, &admin.ID)
	}

	return &domain.RegistrationResult{
		Success: true,
		Message: "Registration request submitted for organization admin approval",
		Action:  domain.RegistrationActionWaitApproval,
		Details: fmt.Sprintf("Your request has been sent to %s administrators for review.", org.Name),
		NextSteps: []string{
			"Wait for organization admin review",
			"Receive approval/rejection notification",
			"If approved, receive login credentials",
		},
	}, nil
}

func (s *registrationService) handleNewOrganization(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	guestOrg, err := s.getOrCreateGuestOrganization(ctx)
	if err != nil {
		return nil, err
	}
	guestAdmin, err := s.getOrCreateGuestAdmin(ctx, guestOrg)
	if err != nil {
		return nil, err
	}

	hrUser, tempPassword, err := s.createGuestHRUser(ctx, guestOrg.ID, req)
	if err != nil {
		return nil, err
	}

	s.sendGuestHRCredentials(ctx, hrUser, tempPassword, req.OrganizationName)
	s.notifyGuestAdminNewHR(ctx, guestAdmin, hrUser, req)

	return &domain.RegistrationResult{
		Success: true,
		Message: "Registration completed successfully",
		Action:  domain.RegistrationActionGuestAssignment,
		Details: "You have been assigned to Guest Organization for review. A Guest Admin will evaluate your profile and may approve limited access.",
		NextSteps: []string{
			"You can now login with your credentials",
			"Guest Admin will review your profile",
			"Limited access granted initially",
			"Full access after organization verification",
		},
	}, nil
}

// getOrCreateGuestOrganization is an idempotent lookup-or-create of the
// sentinel fallback tenant. A unique constraint on organization name
// guards the first-time race; a conflicting insert recovers by
// re-reading.
func (s *registrationService) getOrCreateGuestOrganization(ctx context.Context) (*domain.Organization, error) {
	org, err := s.orgs.GetByName(ctx, domain.GuestOrganizationName)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	org = &domain.Organization{
		Name:             domain.GuestOrganizationName,
		Slug:             domain.GuestOrganizationSlug,
		SubscriptionPlan: domain.GuestSubscriptionPlan,
		IsActive:         true,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		if existing, readErr := s.orgs.GetByName(ctx, domain.GuestOrganizationName); readErr == nil {
			return existing, nil
		}
		return nil, err
	}
	logger.Info("Created Guest Organization", "id", org.ID)
	return org, nil
}

func (s *registrationService) getOrCreateGuestAdmin(ctx context.Context, guestOrg *domain.Organization) (*domain.User, error) {
	admins, err := s.users.ListByOrgAndRole(ctx, guestOrg.ID, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(admins) > 0 {
		return &admins[0], nil
	}

	hash, err := security.HashPassword(guestAdminPassword)
	if err != nil {
		return nil, err
	}
	admin := &domain.User{
		Username:               domain.GuestAdminUsername,
		Email:                  domain.GuestAdminEmail,
		PasswordHash:           hash,
		Role:                   domain.UserRoleAdmin,
		FirstName:              "Guest",
		LastName:               "Administrator",
		OrganizationID:         guestOrg.ID,
		ProfileCompleted:       true,
		IsOrganizationEmployee: true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}
	logger.Info("Created Guest Organization Admin", "id", admin.ID)
	return admin, nil
}

func (s *registrationService) createGuestHRUser(ctx context.Context, guestOrgID int32, req *domain.RegistrationRequest) (*domain.User, string, error) {
	tempPassword, err := security.GenerateTempPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := security.HashPassword(tempPassword)
	if err != nil {
		return nil, "", err
	}

	localPart := req.Email
	if at := strings.Index(req.Email, "@"); at >= 0 {
		localPart = req.Email[:at]
	}

	bio := fmt.Sprintf("Guest HR from %s. Job Title: %s. LinkedIn: %s. Original Organization Email: %s. Website: %s. Message: %s",
		req.OrganizationName, req.JobTitle, orNotProvided(req.LinkedinURL),
		req.OrganizationEmail, orNotProvided(req.CompanyWebsite), orNotProvided(req.Message))

	hrUser := &domain.User{
		Username:               localPart + "_guest_hr",
		Email:                  req.Email,
		Phone:                  validate.NormalizePhone(req.Phone),
		PasswordHash:           hash,
		Role:                   domain.UserRoleRecruiter,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		JobTitle:               req.JobTitle,
		Bio:                    bio,
		LinkedinURL:            req.LinkedinURL,
		OrganizationID:         guestOrgID,
		ProfileCompleted:       true,
		IsOrganizationEmployee: true,
	}
	if err := s.users.Create(ctx, hrUser); err != nil {
		return nil, "", err
	}
	return hrUser, tempPassword, nil
}

func (s *registrationService) sendGuestHRCredentials(ctx context.Context, hrUser *domain.User, tempPassword, originalOrgName string) {
	subject := fmt.Sprintf("Welcome to %s - Guest HR Access", s.platform.Name)
	body := fmt.Sprintf(`Welcome to %s, %s!

Your HR registration for %s has been processed and you have been assigned to our Guest Organization system for review.

Login Credentials:
Username: %s
Password: %s

Next Steps:
1. Log in to your account
2. Complete your profile if needed
3. Guest Admin will review your profile
4. Limited access is available immediately
5. Full access will be granted after verification

Important Notes:
- You are currently in "Guest Organization" for review
- Your profile will be evaluated by our Guest Admin
- Once your organization is verified, you may be transferred to the appropriate organization
- Please change your password after first login

If you have any questions, please contact our support team.`,
		s.platform.Name, hrUser.FirstName, originalOrgName, hrUser.Username, tempPassword)

	userName := hrUser.FirstName
	if userName == "" {
		userName = "HR Professional"
	}
	s.email.Send(ctx, hrUser.Email, subject, "notification", map[string]any{
		"message":    body,
		"user_name":  userName,
		"title":      "HR Registration Confirmation",
		"action_url": s.platform.URL + "/login",
	}, &hrUser.ID)
}

func (s *registrationService) notifyGuestAdminNewHR(ctx context.Context, guestAdmin, hrUser *domain.User, req *domain.RegistrationRequest) {
	subject := fmt.Sprintf("New Guest HR Profile - %s %s", hrUser.FirstName, hrUser.LastName)
	body := fmt.Sprintf(`New HR professional has been assigned to Guest Organization:

HR Details:
Name: %s %s
Email: %s
Phone: %s
Username: %s

Original Organization Information:
Organization: %s
Organization Email: %s
Website: %s
Message: %s

Actions Available:
1. Review the HR profile in Guest Organization
2. Grant limited access permissions
3. Approve for full access if organization is verified
4. Transfer to appropriate organization when available

Please log in to review and manage this Guest HR profile.`,
		hrUser.FirstName, hrUser.LastName, hrUser.Email, orNotProvided(hrUser.Phone), hrUser.Username,
		req.OrganizationName, req.OrganizationEmail,
		orNotProvided(req.CompanyWebsite), orNotProvided(req.Message))

	s.email.Send(ctx, guestAdmin.Email, subject, "notification", map[string]any{
		"message":    body,
		"user_name":  "Guest Admin",
		"title":      "New HR Registration in Guest Organization",
		"action_url": s.platform.URL + "/admin",
	}, &guestAdmin.ID)
}

func orNotProvided(value string) string {
	if value == "" {
		return "Not provided"
	}
	return value
}
