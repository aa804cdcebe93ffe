// Package dataset turns a labeled review corpus into training and testing
// partitions.
package dataset

import (
	"math/rand/v2"

	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// Set holds parallel feature and label slices.
type Set struct {
	Features []features.Vector
	Labels   []sentiment.Label
}

// Len returns the number of examples.
func (s Set) Len() int {
	return len(s.Labels)
}

// Consistent reports whether the set is non-empty with matching lengths and
// a common feature dimension.
func (s Set) Consistent() bool {
	if len(s.Features) == 0 || len(s.Features) != len(s.Labels) {
		return false
	}
	dim := len(s.Features[0])
	if dim == 0 {
		return false
	}
	for _, f := range s.Features {
		if len(f) != dim {
			return false
		}
	}
	return true
}

// NewSource returns a deterministic random source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSource returns an unseeded source. Its PCG state is drawn from the
// runtime generator, so sources created at the same instant still differ.
func RandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Split shuffles a copy of docs with rng and takes the first
// ratio.TestCount(len(docs)) documents as the test partition; the rest form
// the training partition. Features come from each document's Text() and
// labels from its score. A nil rng uses RandomSource.
func Split(docs []ingest.Document, ratio Ratio, rng *rand.Rand) (train, test Set) {
	if rng == nil {
		rng = RandomSource()
	}

	shuffled := make([]ingest.Document, len(docs))
	copy(shuffled, docs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := ratio.TestCount(len(shuffled))
	return build(shuffled[n:]), build(shuffled[:n])
}

// Build extracts features and labels without shuffling.
func Build(docs []ingest.Document) Set {
	return build(docs)
}

func build(docs []ingest.Document) Set {
	s := Set{
		Features: make([]features.Vector, len(docs)),
		Labels:   make([]sentiment.Label, len(docs)),
	}
	for i, d := range docs {
		s.Features[i] = features.Extract(d.Text())
		s.Labels[i] = d.Label()
	}
	return s
}
