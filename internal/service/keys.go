package service

import (
	"context"
	"errors"
	"fmt"

	"supplyease/internal/idgen"
	"supplyease/internal/repository"

	"github.com/rs/zerolog/log"
)

const defaultKeyAttempts = 3

// KeyGenerator mints business keys; satisfied by *idgen.Generator.
type KeyGenerator interface {
	Generate(ctx context.Context, prefix idgen.Prefix) (string, error)
}

// KeyMinter pairs a generator with the bounded regenerate-and-retry policy
// applied when the store reports a duplicate business key.
type KeyMinter struct {
	gen      KeyGenerator
	attempts int
}

func NewKeyMinter(gen KeyGenerator, attempts int) *KeyMinter {
	if attempts <= 0 {
		attempts = defaultKeyAttempts
	}
	return &KeyMinter{gen: gen, attempts: attempts}
}

// insert calls fn with fresh keys until it succeeds, fails with anything other
// than a duplicate key, or runs out of attempts.
func (m *KeyMinter) insert(ctx context.Context, prefix idgen.Prefix, fn func(key string) error) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		key, err := m.gen.Generate(ctx, prefix)
		if err != nil {
			return "", err
		}
		err = fn(key)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return "", err
		}
		lastErr = err
		log.Warn().Str("key", key).Int("attempt", attempt).Msg("business key collision, regenerating")
	}
	return "", fmt.Errorf("%w: %s after %d attempts: %w", ErrConstraintViolation, prefix, m.attempts, lastErr)
}
