// Package validate implements the server-side form validation engine.
// Rule tags are parsed into typed rules up front so an unknown tag is an
// error instead of a silent no-op.
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type RuleKind int

const (
	RuleRequired RuleKind = iota
	RuleEmail
	RulePhone
	RuleURL
	RuleLinkedinURL
	RuleGithubURL
	RuleUsername
	RulePassword
	RuleConfirmPassword
	RuleUniqueEmail
	RuleUniqueUsername
	RuleUniquePhone
	RuleMinLength
	RuleMaxLength
	RuleNumeric
	RuleYear
	RulePostalCode
	RuleMinValue
	RuleMaxValue
)

// Rule is one parsed validation rule. Param carries the N of
// parameterized tags such as "min_length:2".
type Rule struct {
	Kind  RuleKind
	Param int
}

var bareRules = map[string]RuleKind{
	"required":         RuleRequired,
	"email":            RuleEmail,
	"phone":            RulePhone,
	"url":              RuleURL,
	"linkedin_url":     RuleLinkedinURL,
	"github_url":       RuleGithubURL,
	"username":         RuleUsername,
	"password":         RulePassword,
	"confirm_password": RuleConfirmPassword,
	"unique_email":     RuleUniqueEmail,
	"unique_username":  RuleUniqueUsername,
	"unique_phone":     RuleUniquePhone,
	"numeric":          RuleNumeric,
	"year":             RuleYear,
	"postal_code":      RulePostalCode,
}

var paramRules = map[string]RuleKind{
	"min_length": RuleMinLength,
	"max_length": RuleMaxLength,
	"min_value":  RuleMinValue,
	"max_value":  RuleMaxValue,
}

// ParseRule converts a rule tag such as "required" or "min_length:2"
// into its typed form.
func ParseRule(tag string) (Rule, error) {
	if name, param, ok := strings.Cut(tag, ":"); ok {
		kind, found := paramRules[name]
		if !found {
			return Rule{}, fmt.Errorf("unknown validation rule: %s", tag)
		}
		n, err := strconv.Atoi(param)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid parameter in rule %s: %w", tag, err)
		}
		return Rule{Kind: kind, Param: n}, nil
	}
	if kind, found := bareRules[tag]; found {
		return Rule{Kind: kind}, nil
	}
	return Rule{}, fmt.Errorf("unknown validation rule: %s", tag)
}

// MustParseRules parses a list of tags and panics on an unknown one.
// Intended for the static rulesets below.
func MustParseRules(tags ...string) []Rule {
	rules := make([]Rule, 0, len(tags))
	for _, tag := range tags {
		r, err := ParseRule(tag)
		if err != nil {
			panic(err)
		}
		rules = append(rules, r)
	}
	return rules
}

var patterns = map[RuleKind]*regexp.Regexp{
	RuleEmail:       regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
	RulePhone:       regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`),
	RuleURL:         regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`),
	RuleLinkedinURL: regexp.MustCompile(`^https?://(www\.)?linkedin\.com/(in|pub|profile)/[a-zA-Z0-9-]+/?$`),
	RuleGithubURL:   regexp.MustCompile(`^https?://(www\.)?github\.com/[a-zA-Z0-9-]+/?$`),
	RuleUsername:    regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`),
	RuleYear:        regexp.MustCompile(`^(19|20)\d{2}$`),
	RulePostalCode:  regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$|^[A-Z0-9]{3}\s?[A-Z0-9]{3}$`),
}

var fieldNames = map[string]string{
	"first_name":         "First Name",
	"last_name":          "Last Name",
	"email":              "Email",
	"phone":              "Phone Number",
	"password":           "Password",
	"confirm_password":   "Confirm Password",
	"bio":                "Bio",
	"skills":             "Skills",
	"experience":         "Experience",
	"education":          "Education",
	"linkedin_url":       "LinkedIn URL",
	"github_url":         "GitHub URL",
	"portfolio_url":      "Portfolio URL",
	"salary_expectation": "Salary Expectation",
	"company_name":       "Company Name",
	"job_title":          "Job Title",
	"location":           "Location",
	"username":           "Username",
	"organization_name":  "Organization Name",
	"website":            "Website",
	"description":        "Description",
	"industry":           "Industry",
	"size":               "Company Size",
	"founded_year":       "Founded Year",
	"address":            "Address",
	"city":               "City",
	"state":              "State",
	"country":            "Country",
	"postal_code":        "Postal Code",
}

// DisplayName returns the human-facing label for a form field, falling
// back to title-cased words for unmapped fields.
func DisplayName(field string) string {
	if name, ok := fieldNames[field]; ok {
		return name
	}
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Ruleset maps form fields to their ordered validation rules.
type Ruleset map[string][]Rule

type FormType string

const (
	FormCandidateRegister  FormType = "candidate_register"
	FormCandidateProfile   FormType = "candidate_profile"
	FormUserInvitation     FormType = "user_invitation"
	FormOrganizationCreate FormType = "organization_create"
	FormLogin              FormType = "login"
	FormInterviewCreate    FormType = "interview_create"
	FormJobPosting         FormType = "job_posting"
)

var rulesets = map[FormType]Ruleset{
	FormCandidateRegister: {
		"first_name":       MustParseRules("required", "min_length:2", "max_length:50"),
		"last_name":        MustParseRules("required", "min_length:2", "max_length:50"),
		"email":            MustParseRules("required", "email", "unique_email"),
		"phone":            MustParseRules("required", "phone", "unique_phone"),
		"password":         MustParseRules("required", "password"),
		"confirm_password": MustParseRules("required", "confirm_password"),
	},
	FormCandidateProfile: {
		"first_name":         MustParseRules("required", "min_length:2", "max_length:50"),
		"last_name":          MustParseRules("required", "min_length:2", "max_length:50"),
		"email":              MustParseRules("required", "email"),
		"phone":              MustParseRules("required", "phone"),
		"bio":                MustParseRules("max_length:1000"),
		"skills":             MustParseRules("max_length:500"),
		"experience":         MustParseRules("max_length:2000"),
		"education":          MustParseRules("max_length:1000"),
		"linkedin_url":       MustParseRules("linkedin_url"),
		"github_url":         MustParseRules("github_url"),
		"portfolio_url":      MustParseRules("url"),
		"salary_expectation": MustParseRules("required"),
	},
	FormUserInvitation: {
		"first_name": MustParseRules("required", "min_length:2", "max_length:50"),
		"last_name":  MustParseRules("required", "min_length:2", "max_length:50"),
		"email":      MustParseRules("required", "email", "unique_email"),
		"phone":      MustParseRules("phone"),
		"role":       MustParseRules("required"),
	},
	FormOrganizationCreate: {
		"name":         MustParseRules("required", "min_length:2", "max_length:100"),
		"description":  MustParseRules("max_length:1000"),
		"website":      MustParseRules("url"),
		"industry":     MustParseRules("max_length:100"),
		"size":         MustParseRules("max_length:50"),
		"founded_year": MustParseRules("year"),
		"address":      MustParseRules("max_length:200"),
		"city":         MustParseRules("max_length:100"),
		"state":        MustParseRules("max_length:100"),
		"country":      MustParseRules("max_length:100"),
		"postal_code":  MustParseRules("postal_code"),
	},
	FormLogin: {
		"username": MustParseRules("required"),
		"password": MustParseRules("required"),
	},
	FormInterviewCreate: {
		"title":       MustParseRules("required", "min_length:3", "max_length:200"),
		"description": MustParseRules("max_length:1000"),
		"duration":    MustParseRules("required", "numeric", "min_value:5", "max_value:180"),
	},
	FormJobPosting: {
		"title":            MustParseRules("required", "min_length:3", "max_length:200"),
		"description":      MustParseRules("required", "min_length:50", "max_length:5000"),
		"requirements":     MustParseRules("max_length:2000"),
		"benefits":         MustParseRules("max_length:1000"),
		"salary_min":       MustParseRules("numeric", "min_value:0"),
		"salary_max":       MustParseRules("numeric", "min_value:0"),
		"location":         MustParseRules("required", "max_length:100"),
		"job_type":         MustParseRules("required"),
		"experience_level": MustParseRules("required"),
	},
}

// RulesFor returns the ruleset for a form type. Unknown form types get an
// empty ruleset, meaning no validation rather than an error.
func RulesFor(formType FormType) Ruleset {
	return rulesets[formType]
}

// UniquenessStore answers the global existence queries behind the
// unique_* rules.
type UniquenessStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}

// Result is the outcome of validating one form submission. Errors holds
// at most one message per field.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type Engine struct {
	store UniquenessStore
}

// NewEngine builds a validation engine. The store may be nil when no
// ruleset in use carries uniqueness rules.
func NewEngine(store UniquenessStore) *Engine {
	return &Engine{store: store}
}

// ValidateForm validates form data against the named form type's ruleset.
func (e *Engine) ValidateForm(ctx context.Context, form map[string]string, formType FormType) (*Result, error) {
	return e.Validate(ctx, form, RulesFor(formType))
}

// Validate evaluates each field's rules in order, stopping at the first
// failure per field. Values are trimmed first; an empty value passes
// every rule except required. Only store failures return an error.
func (e *Engine) Validate(ctx context.Context, form map[string]string, rules Ruleset) (*Result, error) {
	result := &Result{Valid: true, Errors: map[string]string{}}
	for field, fieldRules := range rules {
		value := strings.TrimSpace(form[field])
		for _, rule := range fieldRules {
			msg, err := e.check(ctx, field, value, rule, form)
			if err != nil {
				return nil, err
			}
			if msg != "" {
				result.Errors[field] = msg
				result.Valid = false
				break
			}
		}
	}
	return result, nil
}

func (e *Engine) check(ctx context.Context, field, value string, rule Rule, form map[string]string) (string, error) {
	if rule.Kind == RuleRequired {
		if value == "" {
			return DisplayName(field) + " is required", nil
		}
		return "", nil
	}
	if value == "" {
		return "", nil
	}

	switch rule.Kind {
	case RuleEmail:
		if !patterns[RuleEmail].MatchString(value) {
			return "Please enter a valid email address", nil
		}
	case RulePhone:
		if !patterns[RulePhone].MatchString(NormalizePhone(value)) {
			return "Please enter a valid phone number", nil
		}
	case RuleURL:
		if !patterns[RuleURL].MatchString(value) {
			return "Please enter a valid URL", nil
		}
	case RuleLinkedinURL:
		if !patterns[RuleLinkedinURL].MatchString(value) {
			return "Please enter a valid LinkedIn profile URL", nil
		}
	case RuleGithubURL:
		if !patterns[RuleGithubURL].MatchString(value) {
			return "Please enter a valid GitHub profile URL", nil
		}
	case RuleUsername:
		if !patterns[RuleUsername].MatchString(value) {
			return "Username must be 3-20 characters long and contain only letters, numbers, and underscores", nil
		}
	case RulePassword:
		if len(value) < 8 {
			return "Password must be at least 8 characters long", nil
		}
	case RuleConfirmPassword:
		if value != strings.TrimSpace(form["password"]) {
			return "Passwords do not match", nil
		}
	case RuleUniqueEmail:
		exists, err := e.store.EmailExists(ctx, value)
		if err != nil {
			return "", err
		}
		if exists {
			return "This email address is already registered", nil
		}
	case RuleUniqueUsername:
		exists, err := e.store.UsernameExists(ctx, value)
		if err != nil {
			return "", err
		}
		if exists {
			return "This username is already taken", nil
		}
	case RuleUniquePhone:
		exists, err := e.store.PhoneExists(ctx, NormalizePhone(value))
		if err != nil {
			return "", err
		}
		if exists {
			return "This phone number is already registered", nil
		}
	case RuleMinLength:
		if len(value) < rule.Param {
			return fmt.Sprintf("%s must be at least %d characters long", DisplayName(field), rule.Param), nil
		}
	case RuleMaxLength:
		if len(value) > rule.Param {
			return fmt.Sprintf("%s must be no more than %d characters long", DisplayName(field), rule.Param), nil
		}
	case RuleNumeric:
		if !isDigits(value) {
			return DisplayName(field) + " must be a number", nil
		}
	case RuleYear:
		if !patterns[RuleYear].MatchString(value) {
			return "Please enter a valid year (e.g., 2024)", nil
		}
	case RulePostalCode:
		if !patterns[RulePostalCode].MatchString(value) {
			return "Please enter a valid postal code", nil
		}
	case RuleMinValue:
		n, ok := parseInt(value)
		if !ok || n < rule.Param {
			return fmt.Sprintf("%s must be at least %d", DisplayName(field), rule.Param), nil
		}
	case RuleMaxValue:
		n, ok := parseInt(value)
		if !ok || n > rule.Param {
			return fmt.Sprintf("%s must be no more than %d", DisplayName(field), rule.Param), nil
		}
	}
	return "", nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func parseInt(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// NormalizePhone strips common formatting characters so that stored and
// submitted numbers compare consistently.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch r {
		case ' ', '-', '(', ')', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
