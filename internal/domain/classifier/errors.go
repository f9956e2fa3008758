package classifier

import "errors"

// ErrQuotaExceeded indicates the prediction service returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("classifier quota exceeded")

// ErrUnavailable indicates the prediction service could not be reached or returned a server error.
var ErrUnavailable = errors.New("classifier unavailable")
