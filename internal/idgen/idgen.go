// Package idgen mints the human-readable business keys used across the
// procurement workflow: <PREFIX>-<YYYYMMDD>-<NNNN>.
package idgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Prefix identifies the entity kind a key is minted for.
type Prefix string

const (
	PrefixPR       Prefix = "PR"
	PrefixSR       Prefix = "SR"
	PrefixPO       Prefix = "PO"
	PrefixSupplier Prefix = "SUP"
)

const (
	minSuffix = 1000
	maxSuffix = 9999

	// A reserved key outlives its calendar day so late retries still see it.
	reservationTTL = 26 * time.Hour
	// Reservation is a best-effort filter; the unique index is the real guard.
	maxReservationTries = 5
)

// Reserver claims a key so other processes skip it. Implementations return
// false when the key was already claimed.
type Reserver interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Generator is safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	now      func() time.Time
	reserver Reserver
}

// Option customises a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRand overrides the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithReserver enables cross-process key reservation.
func WithReserver(r Reserver) Option {
	return func(g *Generator) { g.reserver = r }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns a fresh key for prefix. The date part is the current UTC
// day; the suffix is uniform over [1000, 9999].
func (g *Generator) Generate(ctx context.Context, prefix Prefix) (string, error) {
	if !prefix.valid() {
		return "", fmt.Errorf("idgen: unknown prefix %q", prefix)
	}

	key := g.next(prefix)
	if g.reserver == nil {
		return key, nil
	}

	for i := 0; i < maxReservationTries; i++ {
		ok, err := g.reserver.Reserve(ctx, "idgen:"+key, reservationTTL)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idgen: reservation unavailable, relying on unique index")
			return key, nil
		}
		if ok {
			return key, nil
		}
		key = g.next(prefix)
	}
	// Every draw was taken; hand out the last one and let the store decide.
	return key, nil
}

func (g *Generator) next(prefix Prefix) string {
	g.mu.Lock()
	n := minSuffix + g.rnd.IntN(maxSuffix-minSuffix+1)
	g.mu.Unlock()
	return Format(prefix, g.now(), n)
}

// Format renders a key from its parts.
func Format(prefix Prefix, at time.Time, suffix int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, at.UTC().Format("20060102"), suffix)
}

func (p Prefix) valid() bool {
	switch p {
	case PrefixPR, PrefixSR, PrefixPO, PrefixSupplier:
		return true
	}
	return false
}
