package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	maxLength int
	separator string
}

// MaxLength caps the generated slug length (in runes). Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator used in place of whitespace and punctuation.
// Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Make creates a lowercase slug from the input string.
// Diacritics are folded to their base letters, every other non alphanumeric
// run becomes a single separator, and leading/trailing separators are dropped.
func Make(s string, opts ...Option) string {
	cfg := &config{separator: "-"}
	for _, opt := range opts {
		opt(cfg)
	}

	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))

	lastWasSep := true
	pendingSep := false
	count := 0
	sepLen := len([]rune(cfg.separator))

	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep {
				if cfg.maxLength > 0 && count+sepLen+1 > cfg.maxLength {
					break
				}
				b.WriteString(cfg.separator)
				count += sepLen
				pendingSep = false
			}
			if cfg.maxLength > 0 && count+1 > cfg.maxLength {
				break
			}
			b.WriteRune(r)
			count++
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			pendingSep = true
			lastWasSep = true
		}
	}

	return b.String()
}

// fold strips combining marks after canonical decomposition ("é" -> "e").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
