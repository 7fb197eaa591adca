package client

import (
	"errors"
	"net/http"

	apierrors "github.com/youhong316/harbor/client/internal/errors"
)

// StatusError is returned by Search when the server answers with a non-2xx status.
type StatusError = apierrors.ClassifiedError

// IsStatus reports whether err is a StatusError carrying code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether the server rejected the credentials.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsRetryable reports whether the failure was classified as transient.
func IsRetryable(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Category == apierrors.Recoverable
}
