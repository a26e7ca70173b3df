package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// LengthBetween validates the rune length of value is within [min, max].
func LengthBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be between %d and %d characters", min, max),
			TranslationKey: "validation.length_between",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
			},
		},
	}
}

// MinLen validates the rune length of value is at least min.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// Matches validates value against a precompiled pattern.
func Matches(field, value string, pattern *regexp.Regexp, message string) Rule {
	return Rule{
		Check: func() bool {
			return pattern.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": pattern.String(),
			},
		},
	}
}

// NotContains validates that value does not contain substr.
func NotContains(field, value, substr, message string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.Contains(value, substr)
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.not_contains",
			TranslationValues: map[string]any{
				"field":  field,
				"substr": substr,
			},
		},
	}
}

// NotIn validates that value is not one of the forbidden values.
func NotIn(field, value string, forbidden []string, message string) Rule {
	return Rule{
		Check: func() bool {
			return !slices.Contains(forbidden, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.not_in_list",
			TranslationValues: map[string]any{
				"field": field,
				"value": value,
			},
		},
	}
}

// In validates that value is one of the allowed values.
func In(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowed,
			},
		},
	}
}

// Email validates a bare address ("user@example.com"), rejecting display-name forms.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			at := strings.LastIndex(value, "@")
			return at > 0 && strings.Contains(value[at+1:], ".")
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Custom wraps an arbitrary check.
func Custom(field string, check func() bool, message, translationKey string) Rule {
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: translationKey,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
