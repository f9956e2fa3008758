package application

import "errors"

// ErrInvalidInput marks validation failures the HTTP layer should report as
// bad requests instead of server errors.
var ErrInvalidInput = errors.New("invalid input")
