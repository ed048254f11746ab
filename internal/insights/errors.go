package insights

import "errors"

// ErrInvalidConfiguration marks a scalar that must be positive but was not.
// Functions returning it also return a safe default alongside.
var ErrInvalidConfiguration = errors.New("invalid configuration")
