package middleware

import (
	"net/http"

	internal_errors "github.com/pictonet/pictonet/internal/errors"
)

var errInvalidClaims = &internal_errors.ErrorWithStatusCode{
	Message:    "Invalid token claims",
	StatusCode: http.StatusUnauthorized,
}
