package main

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// rateLimiter holds one token bucket per API key.
type rateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	perSecond rate.Limit
	burst     int
}

func newRateLimiter(perSecond int) *rateLimiter {
	return &rateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		perSecond: rate.Limit(perSecond),
		burst:     perSecond,
	}
}

func (rl *rateLimiter) limiterFor(apiKey string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[apiKey]
	if !ok {
		limiter = rate.NewLimiter(rl.perSecond, rl.burst)
		rl.limiters[apiKey] = limiter
	}
	return limiter
}

// rateLimit enforces a per-API-key request rate on the API routes. Probe
// endpoints stay exempt. A non-positive configured rate disables limiting.
func (api *restAPI) rateLimit(next http.Handler) http.Handler {
	perSecond := api.app.Config.Server.RateLimit
	if perSecond <= 0 {
		return next
	}
	rl := newRateLimiter(perSecond)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = "__no_key__"
		}

		if !rl.limiterFor(apiKey).Allow() {
			w.Header().Set("Retry-After", "1")
			api.sendErrorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
