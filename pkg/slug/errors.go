package slug

import "errors"

var (
	ErrInvalidRules = errors.New("slug: invalid rules")
	ErrNoCandidate  = errors.New("slug: cannot derive a valid slug")
	ErrTooManyTaken = errors.New("slug: too many taken candidates")
)
