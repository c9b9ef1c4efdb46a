package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds the whole request, including backend calls made through the
// request context. A zero timeout disables it.
func Timeout(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}
