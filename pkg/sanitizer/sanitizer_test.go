package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenancy/pkg/sanitizer"
)

func TestApplyAndCompose(t *testing.T) {
	t.Parallel()

	upper := func(s string) string { return strings.ToUpper(s) }
	exclaim := func(s string) string { return s + "!" }

	assert.Equal(t, "HI!", sanitizer.Apply("hi", upper, exclaim))
	assert.Equal(t, "HI!", sanitizer.Compose(upper, exclaim)("hi"))
	assert.Equal(t, "hi", sanitizer.Apply("hi"))
}

func TestStringTransforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"email trims and lowercases", sanitizer.Email, "  Jane.Doe@Example.COM ", "jane.doe@example.com"},
		{"email drops control chars", sanitizer.Email, "jane\x00@example.com", "jane@example.com"},
		{"name collapses whitespace", sanitizer.Name, "  Acme\t\tCorp\n Ltd ", "Acme Corp Ltd"},
		{"name keeps letters", sanitizer.Name, "Café Zürich", "Café Zürich"},
		{"phone", sanitizer.Phone, " +1  234 567\t890 ", "+1 234 567 890"},
		{"control chars keep tab and newline", sanitizer.RemoveControlChars, "a\tb\nc\x07", "a\tb\nc"},
		{"trim to lower", sanitizer.TrimToLower, " ACME ", "acme"},
		{"trim", sanitizer.Trim, "\t acme \n", "acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}
