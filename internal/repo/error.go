package repo

import "errors"

// ErrNotFound covers missing, revoked and expired rows alike so callers
// cannot distinguish a terminal session from an absent one.
var ErrNotFound = errors.New("not found")
