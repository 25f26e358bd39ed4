package domain

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "super_admin"
	UserRoleAdmin      UserRole = "admin"
	UserRoleRecruiter  UserRole = "recruiter"
	UserRoleCandidate  UserRole = "candidate"
	UserRoleViewer     UserRole = "viewer"
)

type User struct {
	ID                     int32    `json:"id"`
	Username               string   `json:"username"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	PasswordHash           string   `json:"-"`
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	JobTitle               string   `json:"job_title"`
	Bio                    string   `json:"bio"`
	LinkedinURL            string   `json:"linkedin_url"`
	Role                   UserRole `json:"role"`
	OrganizationID         int32    `json:"organization_id"`
	ProfileCompleted       bool     `json:"profile_completed"`
	IsOrganizationEmployee bool     `json:"is_organization_employee"`
	CrossOrgAccessible     bool     `json:"cross_org_accessible"`
	CreatedOn              string   `json:"created_on"`
	UpdatedOn              string   `json:"updated_on"`
}

// DisplayName returns "First Last", falling back to the username when the
// first name is absent.
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
