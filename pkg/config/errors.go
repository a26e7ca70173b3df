package config

import "errors"

// ErrParsingConfig wraps any failure to map variables onto a config struct,
// including missing required values.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")
