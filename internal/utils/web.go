package utils

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/pictonet/pictonet/internal/errors"
	"github.com/pictonet/pictonet/internal/logger"
)

// WriteErrorAndStatusCode is the single translation point from internal
// errors to HTTP responses. Anything without an explicit status is a 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	logger.Log.Error("unhandled error at http boundary", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// GetIP extracts the client address, preferring proxy-set headers.
func GetIP(r *http.Request) (string, error) {
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	for _, candidate := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		candidate = strings.TrimSpace(candidate)
		if net.ParseIP(candidate) != nil {
			return candidate, nil
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(host) != nil {
		return host, nil
	}
	return "", fmt.Errorf("no valid ip found")
}
