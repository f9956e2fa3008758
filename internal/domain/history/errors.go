package history

import "errors"

// ErrNotFound indicates a record lookup by id matched nothing.
var ErrNotFound = errors.New("record not found")
