package sanitizer

import (
	"strings"
	"unicode"
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RemoveControlChars drops control characters except tab and newline.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every whitespace run, newlines included, into one space
// and trims the ends.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Email trims and lowercases an address. The local part is kept as typed otherwise.
func Email(s string) string {
	return TrimToLower(RemoveControlChars(s))
}

// Name cleans a person or organization name for storage and display.
var Name = Compose(RemoveControlChars, SingleLine)

// Phone keeps the number's characters, dropping surrounding and repeated spaces.
var Phone = Compose(RemoveControlChars, SingleLine)
