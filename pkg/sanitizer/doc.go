// Package sanitizer normalizes free-form user input before validation.
//
// Transforms are plain func(string) string values, so they chain with Apply
// and Compose:
//
//	email := sanitizer.Email(req.Email)               // "Jane@Example.com " -> "jane@example.com"
//	name := sanitizer.Name("  Acme\t\tCorp\n")       // "Acme Corp"
//	slug := sanitizer.Apply(raw, sanitizer.TrimToLower)
//
// Sanitizing never validates: the result still goes through pkg/validator.
package sanitizer
