package infra

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"supplyease/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, "closed", cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, "open", cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ProbeClosesOrReopens(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(1, time.Minute)
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errBoom })
	require.Equal(t, "open", cb.State())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, "half-open", cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, "open", cb.State())

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
}

func TestGuardedMailer_Send(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "smtp.test", SMTPPort: 25})
	var got *email.Email
	m.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		assert.Equal(t, "smtp.test:25", addr)
		got = e
		return nil
	}

	g := NewGuardedMailer(m, NewCircuitBreaker(1, time.Minute))
	require.NoError(t, g.Send("ops@example.com", "PO created", "PO-20260101-1234"))
	require.NotNil(t, got)
	assert.Equal(t, []string{"ops@example.com"}, got.To)
	assert.Equal(t, "PO created", got.Subject)

	m.send = func(*email.Email, string, smtp.Auth) error { return errBoom }
	assert.ErrorIs(t, g.Send("ops@example.com", "x", "y"), errBoom)
	assert.ErrorIs(t, g.Send("ops@example.com", "x", "y"), ErrCircuitOpen)
}
