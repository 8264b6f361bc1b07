package auth

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultLoginMaxAttempts = 5
	DefaultLoginWindow      = time.Minute

	// Distinct clients tracked at once; the oldest are evicted first
	loginLimiterSize = 4096
)

// LoginLimiter counts failed logins per client in a sliding window.
type LoginLimiter struct {
	maxAttempts int
	window      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	failures *expirable.LRU[string, []time.Time]
}

func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultLoginMaxAttempts
	}
	if window <= 0 {
		window = DefaultLoginWindow
	}
	return &LoginLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		failures:    expirable.NewLRU[string, []time.Time](loginLimiterSize, nil, window),
	}
}

// Blocked reports whether key has used up its attempts in the current window.
func (l *LoginLimiter) Blocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.recent(key)) >= l.maxAttempts
}

// RecordFailure counts one failed attempt for key.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures.Add(key, append(l.recent(key), l.now()))
}

// recent drops attempts older than the window. Caller holds mu.
func (l *LoginLimiter) recent(key string) []time.Time {
	attempts, ok := l.failures.Get(key)
	if !ok {
		return nil
	}
	cutoff := l.now().Add(-l.window)
	kept := make([]time.Time, 0, len(attempts)+1)
	for _, at := range attempts {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		l.failures.Remove(key)
		return nil
	}
	return kept
}
