// Package validator provides field-level validation rules and the
// ValidationErrors type used to report them.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Apply evaluates rules and aggregates failures into ValidationErrors, which
// implements error and matches ErrValidationFailed via errors.Is:
//
//	err := validator.Apply(
//		validator.Required("name", in.Name),
//		validator.Email("email", in.Email),
//	)
//	if validator.IsValidationError(err) {
//		fields := validator.ExtractValidationErrors(err).AsMap()
//	}
package validator
