package registration

import "errors"

// ErrRegistrationFailed is returned for any non-validation failure; no
// partial registration is left behind.
var ErrRegistrationFailed = errors.New("registration failed")
