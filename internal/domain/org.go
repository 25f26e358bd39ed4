package domain

// Reserved fallback tenant for HR signups whose company has no existing
// organization record. Created lazily, singleton per deployment.
const (
	GuestOrganizationName = "Guest Organization"
	GuestOrganizationSlug = "guest-organization"
	GuestSubscriptionPlan = "guest"

	GuestAdminUsername = "guest_admin"
	GuestAdminEmail    = "guest.admin@ez2source.com"
)

type Organization struct {
	ID               int32  `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	SubscriptionPlan string `json:"subscription_plan"`
	IsActive         bool   `json:"is_active"`
	CreatedOn        string `json:"created_on"`
}
