package infra

import (
	"errors"
	"sync"
	"time"
)

// CircuitBreaker stops the notification worker from hammering an SMTP relay
// that is down. After FailureThreshold consecutive failures it opens and
// fails fast for Cooldown; the first call after that is a probe whose result
// closes or re-opens the breaker.
type CircuitBreaker struct {
	mu        sync.Mutex
	failures  int
	openUntil time.Time
	probing   bool

	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &CircuitBreaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// State is "closed", "open" or "half-open"; reported by /health.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case cb.openUntil.IsZero():
		return "closed"
	case cb.now().Before(cb.openUntil):
		return "open"
	default:
		return "half-open"
	}
}

// Execute runs fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if !cb.openUntil.IsZero() {
		if cb.now().Before(cb.openUntil) || cb.probing {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false
	if err == nil {
		cb.failures = 0
		cb.openUntil = time.Time{}
		return nil
	}
	cb.failures++
	if cb.failures >= cb.threshold || !cb.openUntil.IsZero() {
		cb.openUntil = cb.now().Add(cb.cooldown)
	}
	return err
}

// GuardedMailer routes Mailer.Send through a breaker.
type GuardedMailer struct {
	mailer  *Mailer
	breaker *CircuitBreaker
}

func NewGuardedMailer(m *Mailer, cb *CircuitBreaker) *GuardedMailer {
	return &GuardedMailer{mailer: m, breaker: cb}
}

func (g *GuardedMailer) Send(to, subject, body string) error {
	return g.breaker.Execute(func() error { return g.mailer.Send(to, subject, body) })
}
