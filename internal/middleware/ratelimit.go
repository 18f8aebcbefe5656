package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit begrenzt eingehende Anfragen global auf requestsPerSecond.
// Die Burst-Grösse entspricht der Rate, mindestens aber 1. Abgewiesene
// Anfragen erhalten 429 mit Retry-After.
func RateLimit(requestsPerSecond float64, logger *zap.Logger) func(http.Handler) http.Handler {
	burst := int(math.Ceil(requestsPerSecond))
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	retryAfter := "1"
	if requestsPerSecond > 0 && requestsPerSecond < 1 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / requestsPerSecond)))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("rate-limit überschritten",
					zap.String("remote", r.RemoteAddr),
					zap.String("pfad", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "zu viele anfragen",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
