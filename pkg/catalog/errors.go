package catalog

import "errors"

var (
	ErrLoad    = errors.New("catalog: cannot load")
	ErrInvalid = errors.New("catalog: invalid")
)
