// Package scan provides chunked, parallel matching of document snapshots.
package scan

import (
	"context"
	"iter"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/docgo/model"
)

// checkInterval is the number of documents a worker matches between context
// checks.
const checkInterval = 1024

// MatchSet records the snapshot positions of matching documents.
// It wraps a 32-bit Roaring Bitmap.
type MatchSet struct {
	rb *roaring.Bitmap
}

// NewMatchSet creates a new empty match set.
func NewMatchSet() *MatchSet {
	return &MatchSet{
		rb: roaring.New(),
	}
}

// Add records position i as a match.
func (s *MatchSet) Add(i uint32) {
	s.rb.Add(i)
}

// Contains reports whether position i matched.
func (s *MatchSet) Contains(i uint32) bool {
	return s.rb.Contains(i)
}

// Cardinality returns the number of matches.
func (s *MatchSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty reports whether nothing matched.
func (s *MatchSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Or merges other into the set.
func (s *MatchSet) Or(other *MatchSet) {
	s.rb.Or(other.rb)
}

// Iterate yields the matching positions in ascending order.
func (s *MatchSet) Iterate() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToArray returns the matching positions in ascending order.
func (s *MatchSet) ToArray() []uint32 {
	return s.rb.ToArray()
}

// Scan matches every document of snapshot and returns the set of matching
// positions. The snapshot is split into contiguous chunks matched by up to
// workers goroutines; workers <= 0 uses GOMAXPROCS. Scan stops early when
// ctx is canceled.
func Scan(ctx context.Context, snapshot []model.Document, match func(model.Document) bool, workers int) (*MatchSet, error) {
	result := NewMatchSet()
	if len(snapshot) == 0 {
		return result, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(snapshot) {
		workers = len(snapshot)
	}

	chunkSize := (len(snapshot) + workers - 1) / workers
	chunks := make([]*roaring.Bitmap, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		start := w * chunkSize
		if start >= len(snapshot) {
			break
		}
		end := min(start+chunkSize, len(snapshot))

		g.Go(func() error {
			chunk := roaring.New()
			for i := start; i < end; i++ {
				if (i-start)%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if match(snapshot[i]) {
					chunk.Add(uint32(i))
				}
			}
			chunks[w] = chunk
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, chunk := range chunks {
		if chunk != nil {
			result.rb.Or(chunk)
		}
	}
	return result, nil
}
