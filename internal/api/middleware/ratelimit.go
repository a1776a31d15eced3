package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	msgRateLimited = "слишком много запросов, попробуйте позже"

	limiterIdleTTL  = 10 * time.Minute
	cleanupInterval = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов по пользователю, а без авторизации по IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	logger   Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter requestsPerMinute запросов в минуту с запасом burst.
// Простаивающие лимитеры удаляются фоновой горутиной, остановить ее нужно через Stop.
func NewRateLimiter(requestsPerMinute int, burst int, logger Logger) *RateLimiter {
	l := &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}

	go l.cleanupLoop(cleanupInterval)

	return l
}

// Stop останавливает фоновую очистку, повторный вызов безопасен
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if evicted := l.cleanup(now); evicted > 0 {
				l.logger.Debug("RateLimit - evicted %d idle limiters", evicted)
			}
		case <-l.stopCh:
			return
		}
	}
}

// cleanup удаляет лимитеры, к которым не обращались дольше limiterIdleTTL
func (l *RateLimiter) cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, key)
			evicted++
		}
	}
	return evicted
}

// Allow проверяет лимит для ключа
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// Middleware mux.MiddlewareFunc
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := GetUserID(r.Context())
		if !ok {
			key = clientIP(r)
		}

		if !l.Allow(key) {
			l.logger.Warn("RateLimit - limit exceeded for key=%s path=%s request_id=%s",
				key, r.URL.Path, GetRequestID(r.Context()))
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
