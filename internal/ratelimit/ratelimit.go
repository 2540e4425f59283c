// Package ratelimit throttles sensitive endpoints per client IP. The
// limiter registry is the only shared mutable in-process state in the
// service and is safe for concurrent use.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out one token-bucket limiter per client IP. The bucket
// allows `limit` requests per `window`.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client

	limit  rate.Limit
	burst  int
	maxAge time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing limit requests per window for each IP.
// A limit below 1 is treated as 1.
func New(limit int, window time.Duration) *Limiter {
	if limit < 1 {
		limit = 1
	}
	return &Limiter{
		clients: make(map[string]*client),
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		maxAge:  2 * window,
	}
}

// Allow reports whether a request from the given IP may proceed.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// sweep evicts entries that have not been seen for maxAge.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.maxAge)
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// Middleware wraps a handler, rejecting over-limit requests with 429
// before any side effects run.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"Too many requests, please slow down"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP trusts chi's RealIP middleware to have rewritten RemoteAddr
// from X-Forwarded-For when behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Janitor periodically evicts idle limiter entries from its limiters.
type Janitor struct {
	limiters []*Limiter
	interval time.Duration
	done     chan bool
}

// NewJanitor creates a janitor sweeping the given limiters.
func NewJanitor(interval time.Duration, limiters ...*Limiter) *Janitor {
	return &Janitor{limiters: limiters, interval: interval, done: make(chan bool)}
}

// Run starts the sweep loop. Call from a goroutine.
func (j *Janitor) Run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			for _, l := range j.limiters {
				l.sweep()
			}
		}
	}
}

// Stop halts the sweep loop.
func (j *Janitor) Stop() {
	j.done <- true
}
