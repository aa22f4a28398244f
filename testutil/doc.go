// Package testutil provides testing utilities for docgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random number generator and helpers
// for generating document snapshots.
//
// # Random Documents
//
//	rng := testutil.NewRNG(seed)
//	snapshot := rng.RandomDocuments("cities", 10_000, "population", "rank")
//
// Generated document keys are zero-padded so that key order matches
// generation order.
package testutil
