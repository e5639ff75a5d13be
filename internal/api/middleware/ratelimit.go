package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/jcallaghan/betpool/internal/api/apierr"
)

// RateLimit creates middleware that rejects requests beyond the limiter's
// token-bucket budget. Signal events arrive at reaction speed and can
// spike; the limiter sheds the excess instead of queueing it.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				apierr.WriteError(w, apierr.NewRateLimitedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
