package slug

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/tenancy/pkg/validator"
)

// DefaultPattern allows lowercase alphanumerics with internal hyphens only.
const DefaultPattern = `^[a-z0-9][a-z0-9-]*[a-z0-9]$`

// Default length bounds.
const (
	DefaultMinLength = 3
	DefaultMaxLength = 30
)

// DefaultReserved lists slugs kept for system subdomains and routes.
var DefaultReserved = []string{
	"admin", "api", "www", "mail", "ftp", "localhost", "tenant", "app", "dashboard",
	"support", "help", "docs", "blog", "shop", "store", "cdn", "static", "assets",
	"public", "private", "system", "root", "test", "staging", "dev", "demo", "status",
	"health", "metrics", "webhooks", "callback", "oauth", "auth", "login", "register",
	"signup", "signin", "logout", "password", "reset", "verify", "email", "sms",
	"notification", "notifications",
}

// Rules describes what a legal tenant slug looks like.
type Rules struct {
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Reserved  []string
}

// DefaultRules returns the built-in slug rules.
func DefaultRules() Rules {
	return Rules{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Pattern:   regexp.MustCompile(DefaultPattern),
		Reserved:  slices.Clone(DefaultReserved),
	}
}

// NewRules builds Rules from raw settings, falling back to defaults for zero values.
func NewRules(minLength, maxLength int, pattern string, reserved []string) (Rules, error) {
	r := DefaultRules()
	if minLength > 0 {
		r.MinLength = minLength
	}
	if maxLength > 0 {
		r.MaxLength = maxLength
	}
	if r.MinLength > r.MaxLength {
		return Rules{}, fmt.Errorf("%w: min length %d exceeds max length %d", ErrInvalidRules, r.MinLength, r.MaxLength)
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
		r.Pattern = re
	}
	if reserved != nil {
		r.Reserved = slices.Clone(reserved)
	}
	return r, nil
}

// Validate reports every rule the value breaks as field-level validation errors.
// It returns nil for a legal slug.
func (r Rules) Validate(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validator.Apply(validator.Required(field, value))
	}

	return validator.Apply(
		validator.LengthBetween(field, value, r.MinLength, r.MaxLength),
		validator.Matches(field, value, r.Pattern,
			"may only contain lowercase letters, numbers and hyphens, and must start and end with a letter or number"),
		validator.NotContains(field, value, "--", "must not contain consecutive hyphens"),
		validator.NotIn(field, value, r.Reserved, "is reserved and cannot be used"),
	)
}

// Valid reports whether value passes every rule.
func (r Rules) Valid(value string) bool {
	return r.Validate("slug", value) == nil
}

// IsReserved reports whether value is in the reserved list.
func (r Rules) IsReserved(value string) bool {
	return slices.Contains(r.Reserved, value)
}
