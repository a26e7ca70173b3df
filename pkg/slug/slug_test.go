package slug_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenancy/pkg/slug"
	"github.com/dmitrymomot/tenancy/pkg/validator"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "simple text", input: "Hello World", expected: "hello-world"},
		{name: "punctuation", input: "  Acme, Inc.  ", expected: "acme-inc"},
		{name: "numbers", input: "Shop 24/7", expected: "shop-24-7"},
		{name: "diacritics", input: "Café résumé naïve", expected: "cafe-resume-naive"},
		{name: "only symbols", input: "!@#$%^&*()", expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "custom separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "hello_world"},
		{
			name:     "max length never ends with separator",
			input:    "This is a very long title that should be truncated",
			opts:     []slug.Option{slug.MaxLength(20)},
			expected: "this-is-a-very-long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	rules := slug.DefaultRules()

	t.Run("valid slugs", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"acme", "abc", "my-company", "shop24", "a1b", strings.Repeat("a", 30)} {
			assert.NoError(t, rules.Validate("subdomain", s), s)
			assert.True(t, rules.Valid(s), s)
		}
	})

	tests := []struct {
		name    string
		value   string
		message string
	}{
		{name: "empty", value: "", message: "field is required"},
		{name: "too short", value: "ab", message: "must be between 3 and 30 characters"},
		{name: "too long", value: strings.Repeat("a", 31), message: "must be between 3 and 30 characters"},
		{name: "uppercase", value: "Acme", message: "may only contain lowercase letters, numbers and hyphens, and must start and end with a letter or number"},
		{name: "leading hyphen", value: "-acme", message: "may only contain lowercase letters, numbers and hyphens, and must start and end with a letter or number"},
		{name: "trailing hyphen", value: "acme-", message: "may only contain lowercase letters, numbers and hyphens, and must start and end with a letter or number"},
		{name: "dot", value: "foo.bar", message: "may only contain lowercase letters, numbers and hyphens, and must start and end with a letter or number"},
		{name: "consecutive hyphens", value: "ac--me", message: "must not contain consecutive hyphens"},
		{name: "reserved", value: "admin", message: "is reserved and cannot be used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := rules.Validate("subdomain", tt.value)
			require.Error(t, err)
			assert.True(t, validator.IsValidationError(err))
			assert.ErrorIs(t, err, validator.ErrValidationFailed)

			ve := validator.ExtractValidationErrors(err)
			assert.True(t, ve.Has("subdomain"))
			assert.Contains(t, ve.Get("subdomain"), tt.message)
		})
	}

	t.Run("empty reports a single error", func(t *testing.T) {
		t.Parallel()
		ve := validator.ExtractValidationErrors(rules.Validate("slug", "   "))
		assert.Len(t, ve, 1)
	})
}

func TestNewRules(t *testing.T) {
	t.Parallel()

	t.Run("zero values fall back to defaults", func(t *testing.T) {
		t.Parallel()
		r, err := slug.NewRules(0, 0, "", nil)
		require.NoError(t, err)
		assert.Equal(t, slug.DefaultMinLength, r.MinLength)
		assert.Equal(t, slug.DefaultMaxLength, r.MaxLength)
		assert.Equal(t, slug.DefaultPattern, r.Pattern.String())
		assert.True(t, r.IsReserved("www"))
	})

	t.Run("custom reserved list replaces defaults", func(t *testing.T) {
		t.Parallel()
		r, err := slug.NewRules(4, 10, "", []string{"internal"})
		require.NoError(t, err)
		assert.False(t, r.IsReserved("admin"))
		assert.Error(t, r.Validate("slug", "internal"))
		assert.Error(t, r.Validate("slug", "abc"))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := slug.NewRules(0, 0, "([", nil)
		assert.ErrorIs(t, err, slug.ErrInvalidRules)
	})

	t.Run("min above max", func(t *testing.T) {
		t.Parallel()
		_, err := slug.NewRules(10, 5, "", nil)
		assert.ErrorIs(t, err, slug.ErrInvalidRules)
	})
}

func takenSet(taken ...string) slug.ExistsFunc {
	set := make(map[string]bool, len(taken))
	for _, s := range taken {
		set[s] = true
	}
	return func(_ context.Context, s string) (bool, error) {
		return set[s], nil
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	rules := slug.DefaultRules()
	ctx := context.Background()

	t.Run("free base", func(t *testing.T) {
		t.Parallel()
		s, err := slug.Unique(ctx, "Acme Corp", rules, takenSet())
		require.NoError(t, err)
		assert.Equal(t, "acme-corp", s)
	})

	t.Run("reserved base gets org suffix", func(t *testing.T) {
		t.Parallel()
		s, err := slug.Unique(ctx, "Admin", rules, takenSet())
		require.NoError(t, err)
		assert.Equal(t, "admin-org", s)
	})

	t.Run("taken base gets numeric suffix", func(t *testing.T) {
		t.Parallel()
		s, err := slug.Unique(ctx, "ACME", rules, takenSet("acme", "acme-1"))
		require.NoError(t, err)
		assert.Equal(t, "acme-2", s)
	})

	t.Run("suffix keeps result within max length", func(t *testing.T) {
		t.Parallel()
		name := "A very long organization name that keeps going"
		s, err := slug.Unique(ctx, name, rules, takenSet("a-very-long-organization-name"))
		require.NoError(t, err)
		assert.Equal(t, "a-very-long-organization-nam-1", s)
		assert.True(t, rules.Valid(s))
	})

	t.Run("name too short", func(t *testing.T) {
		t.Parallel()
		_, err := slug.Unique(ctx, "A", rules, takenSet())
		assert.ErrorIs(t, err, slug.ErrNoCandidate)
	})

	t.Run("exists error propagates", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("db down")
		_, err := slug.Unique(ctx, "Acme", rules, func(context.Context, string) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("custom pattern respected", func(t *testing.T) {
		t.Parallel()
		r := rules
		r.Pattern = regexp.MustCompile(`^[a-z]+$`)
		_, err := slug.Unique(ctx, "Acme Corp", r, takenSet())
		assert.ErrorIs(t, err, slug.ErrNoCandidate)
	})
}
