// Package testutil provides deterministic helpers for gridview tests:
// a seeded, thread-safe RNG and dataset generators.
package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/gridview/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

var categories = []string{"alpha", "beta", "gamma", "delta"}

// MakeRows generates n deterministic rows shaped like a typical dataset:
// flat fields plus a nested "user.name" path.
func MakeRows(rng *RNG, n int) []model.Row {
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			"id":       i,
			"name":     fmt.Sprintf("row %04d", i),
			"category": categories[rng.Intn(len(categories))],
			"score":    rng.Float64() * 100,
			"user": map[string]any{
				"name": fmt.Sprintf("user-%d", rng.Intn(n)),
			},
		}
	}
	return rows
}
