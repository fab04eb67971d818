package ctrl

import "errors"

// ErrNotFound is returned when a session cannot be resolved for the caller.
var ErrNotFound = errors.New("not found")

// ErrStoreTimeout is returned when a store call exceeds its deadline.
var ErrStoreTimeout = errors.New("store timeout")
