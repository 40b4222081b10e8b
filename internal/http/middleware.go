package httpserver

import (
	"expvar"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"

	"github.com/Clark-Hu/movie-space/internal/config"
)

// expvar names are process-global, so the counters are registered once.
var (
	totalRequestsReceived    = expvar.NewInt("total_requests_received")
	totalResponsesSent       = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicro = expvar.NewInt("total_processing_time_μs")
	totalResponsesByStatus   = expvar.NewMap("total_responses_sent_by_status")
)

func (s *Server) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totalRequestsReceived.Add(1)
		m := httpsnoop.CaptureMetrics(next, w, r)
		totalResponsesSent.Add(1)
		totalProcessingTimeMicro.Add(m.Duration.Microseconds())
		totalResponsesByStatus.Add(strconv.Itoa(m.Code), 1)
	})
}

const (
	limiterIdleTTL      = 3 * time.Minute
	limiterSweepEvery   = time.Minute
	limiterErrorCode    = "RATE_LIMITED"
	limiterErrorMessage = "rate limit exceeded"
)

type limiterClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter throttles callers of this server per client IP. It does not
// touch upstream traffic.
type rateLimiter struct {
	enabled bool
	rps     rate.Limit
	burst   int
	reject  func(w http.ResponseWriter, status int, code, message string)
	now     func() time.Time

	mu        sync.Mutex
	clients   map[string]*limiterClient
	lastSweep time.Time
}

func newRateLimiter(cfg config.Config, reject func(http.ResponseWriter, int, string, string)) *rateLimiter {
	return &rateLimiter{
		enabled: cfg.LimiterEnabled,
		rps:     rate.Limit(cfg.LimiterRPS),
		burst:   cfg.LimiterBurst,
		reject:  reject,
		now:     time.Now,
		clients: make(map[string]*limiterClient),
	}
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.enabled {
			next.ServeHTTP(w, r)
			return
		}
		if !l.allow(realip.FromRequest(r)) {
			l.reject(w, http.StatusTooManyRequests, limiterErrorCode, limiterErrorMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *rateLimiter) allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterSweepEvery {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &limiterClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}
