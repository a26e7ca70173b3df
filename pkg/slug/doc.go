// Package slug owns tenant slug legality and generation.
//
// A tenant slug doubles as the tenant's subdomain, so every place that accepts
// one (registration, admin provisioning, persistence, host resolution) goes
// through the same Rules.Validate function.
//
//	rules := slug.DefaultRules()
//	if err := rules.Validate("subdomain", "acme"); err != nil {
//		// validator.ValidationErrors with field-level messages
//	}
//
// Make turns an arbitrary display name into a slug candidate, folding
// diacritics to ASCII. Unique combines Make with a reserved-word fallback and a
// numeric suffix loop driven by a caller supplied existence check.
package slug
