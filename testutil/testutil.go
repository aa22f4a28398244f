package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/docgo/model"
)

// FieldValueRange bounds the integer field values RandomDocuments
// generates.
const FieldValueRange = 1_000_000

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

// Int63n returns a non-negative pseudo-random int64 in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(2) == 1
}

// RandomDocuments generates n documents in the given collection, each
// carrying the named integer fields with values in [0, FieldValueRange).
// Document IDs are zero-padded ("doc-000042") so key order matches
// generation order. Locks only once per call.
func (r *RNG) RandomDocuments(collection string, n int, fields ...string) []model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]model.Document, n)
	for i := range n {
		values := make(map[string]model.Value, len(fields))
		for _, field := range fields {
			values[field] = model.Int(r.rand.Int63n(FieldValueRange))
		}

		key := model.DocumentKeyFromString(fmt.Sprintf("%s/doc-%06d", collection, i))
		docs[i] = model.NewDocument(key, values)
	}

	return docs
}
