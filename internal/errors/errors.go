package errors

import "net/http"

// ErrorWithStatusCode carries the HTTP status a failure should surface as.
// Handlers translate any other error into a plain 500.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFound covers every resolution failure that must not leak existence:
// unknown or inactive app, cross-tenant media, missing canonical file.
func NotFound() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}
}

// AccessRestricted is a policy denial. Deliberately the same wording for an
// anonymous caller and for an identified caller outside the permitted groups.
func AccessRestricted() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Access restricted", StatusCode: http.StatusForbidden}
}

// InvalidInput marks a malformed request, distinct from any policy decision.
func InvalidInput(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}
