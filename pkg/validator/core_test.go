package validator_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenancy/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("default message when empty", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		assert.Equal(t, "validation failed: email: is required", errs.Error())
	})

	t.Run("several errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "password", Message: "too short"})
		assert.Equal(t, "validation failed: email: is required; password: too short", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "password", Message: "too short"},
		{Field: "email", Message: "is required"},
		{Field: "password", Message: "missing digit"},
	}

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("name"))
	assert.Equal(t, []string{"too short", "missing digit"}, errs.Get("password"))
	assert.Nil(t, errs.Get("name"))
	assert.Equal(t, []string{"password", "email"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"password": {"too short", "missing digit"},
		"email":    {"is required"},
	}, errs.AsMap())
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("nil when all pass", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("name", "Bob"),
			validator.Email("email", "bob@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.Email("email", "nope"),
			validator.MinLen("password", "short", 12),
		)
		require.Error(t, err)
		ve := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"name", "email", "password"}, ve.Fields())
	})

	t.Run("first failure stops early", func(t *testing.T) {
		called := false
		err := validator.FirstFailure(
			validator.Required("name", ""),
			validator.Custom("name", func() bool { called = true; return true }, "x", "x"),
		)
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^[a-z]+$`)

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"required ok", validator.Required("f", "x"), true},
		{"required blank", validator.Required("f", " \t"), false},
		{"length in range", validator.LengthBetween("f", "abc", 3, 5), true},
		{"length counts runes", validator.LengthBetween("f", "äöü", 3, 3), true},
		{"length too long", validator.LengthBetween("f", "abcdef", 3, 5), false},
		{"min len", validator.MinLen("f", "abc", 4), false},
		{"matches", validator.Matches("f", "abc", pattern, "bad"), true},
		{"does not match", validator.Matches("f", "ab1", pattern, "bad"), false},
		{"not contains", validator.NotContains("f", "a--b", "--", "bad"), false},
		{"not in", validator.NotIn("f", "admin", []string{"admin"}, "bad"), false},
		{"in", validator.In("f", "saas", []string{"saas", "other"}), true},
		{"not in allowed", validator.In("f", "shop", []string{"saas", "other"}), false},
		{"email", validator.Email("f", "bob@example.com"), true},
		{"email display name", validator.Email("f", "Bob <bob@example.com>"), false},
		{"email without tld", validator.Email("f", "bob@localhost"), false},
		{"email empty", validator.Email("f", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
			assert.Equal(t, "f", tt.rule.Error.Field)
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := validator.NewError("email", "is taken", "validation.unique")
	b := validator.NewError("subdomain", "is taken", "validation.unique")

	merged := validator.Merge(nil, a, b)
	ve := validator.ExtractValidationErrors(merged)
	assert.Equal(t, []string{"email", "subdomain"}, ve.Fields())

	assert.NoError(t, validator.Merge(nil, nil))

	boom := errors.New("db down")
	assert.ErrorIs(t, validator.Merge(a, boom), boom)
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	ve := validator.NewError("slug", "is reserved", "validation.not_in_list")
	wrapped := fmt.Errorf("create tenant: %w", ve)

	assert.True(t, validator.IsValidationError(wrapped))
	assert.ErrorIs(t, wrapped, validator.ErrValidationFailed)
	assert.Equal(t, ve, validator.ExtractValidationErrors(wrapped))
	assert.False(t, validator.IsValidationError(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
	assert.Nil(t, validator.ExtractValidationErrors(nil))
}
