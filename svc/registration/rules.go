package registration

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrymomot/tenancy/pkg/validator"
)

// Form field names used in validation errors.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldOrganizationName     = "organization_name"
	FieldSubdomain            = "subdomain"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldSlug                 = "slug"
	FieldType                 = "type"
	FieldPrimaryColor         = "primary_color"
	FieldOwnerUserID          = "owner_user_id"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 12

var (
	organizationPattern = regexp.MustCompile(`^[\p{L}\d\s\-.]+$`)
	phonePattern        = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

func validateUser(req Request) error {
	rules := []validator.Rule{
		validator.Required(FieldName, req.Name),
		validator.LengthBetween(FieldName, req.Name, 1, 255),
		validator.Email(FieldEmail, req.Email),
		validator.LengthBetween(FieldEmail, req.Email, 3, 255),
		validator.MinLen(FieldPassword, req.Password, MinPasswordLength),
		validator.Custom(FieldPassword, func() bool { return hasMixedCase(req.Password) },
			"must contain both uppercase and lowercase letters", "validation.password_mixed_case"),
		validator.Custom(FieldPassword, func() bool { return strings.ContainsFunc(req.Password, unicode.IsDigit) },
			"must contain at least one number", "validation.password_numbers"),
		validator.Custom(FieldPassword, func() bool { return strings.ContainsFunc(req.Password, isSymbol) },
			"must contain at least one symbol", "validation.password_symbols"),
		validator.Custom(FieldPasswordConfirmation, func() bool { return req.Password == req.PasswordConfirmation },
			"does not match the password", "validation.confirmed"),
	}
	if req.Phone != "" {
		rules = append(rules, validator.Matches(FieldPhone, req.Phone, phonePattern, "must be a valid phone number"))
	}
	return validator.Apply(rules...)
}

func validateOrganization(name string) error {
	return validator.FirstFailure(
		validator.Required(FieldOrganizationName, name),
		validator.LengthBetween(FieldOrganizationName, name, 2, 50),
		validator.Matches(FieldOrganizationName, name, organizationPattern,
			"may only contain letters, numbers, spaces, hyphens and dots"),
	)
}

func hasMixedCase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper) && strings.ContainsFunc(s, unicode.IsLower)
}

func isSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
