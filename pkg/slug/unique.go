package slug

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ExistsFunc reports whether a slug is already used by a live tenant.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// maxAttempts bounds the numeric suffix loop.
const maxAttempts = 1000

// Unique derives an unused slug from a display name.
// A reserved base gets the "-org" suffix; a taken candidate is retried as
// base-1, base-2 and so on until exists reports false.
func Unique(ctx context.Context, name string, rules Rules, exists ExistsFunc) (string, error) {
	base := Make(name, MaxLength(rules.MaxLength))
	if rules.IsReserved(base) {
		base = withSuffix(base, "-org", rules.MaxLength)
	}
	if !rules.Valid(base) {
		return "", fmt.Errorf("%w from %q", ErrNoCandidate, name)
	}

	candidate := base
	for i := 1; i <= maxAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}

		candidate = withSuffix(base, "-"+strconv.Itoa(i), rules.MaxLength)
		if !rules.Valid(candidate) {
			return "", fmt.Errorf("%w: %q", ErrNoCandidate, candidate)
		}
	}

	return "", ErrTooManyTaken
}

// withSuffix appends suffix, shortening base so the result fits in maxLength.
func withSuffix(base, suffix string, maxLength int) string {
	if n := maxLength - len(suffix); maxLength > 0 && len(base) > n {
		if n < 0 {
			n = 0
		}
		base = strings.TrimRight(base[:n], "-")
	}
	return base + suffix
}
