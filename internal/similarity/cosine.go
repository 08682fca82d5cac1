// Package similarity provides the fixed, audited relevance scorer used
// by retrieval. Scoring caller-supplied functions against stored data
// is deliberately not supported.
package similarity

import (
	"math"
	"sync/atomic"

	"github.com/ferrule-labs/askdocs/internal/logger"
)

// mismatches counts scored pairs whose vector lengths differed.
// Accumulating mismatches means dirty legacy data; operators watch
// this to decide when a re-embedding pass is due.
var mismatches atomic.Int64

// MismatchCount returns how many dimension-mismatched comparisons have
// been scored since process start.
func MismatchCount() int64 {
	return mismatches.Load()
}

// Cosine computes the signed cosine similarity between a and b.
//
// It never fails: vectors of unequal length are truncated to their
// common prefix (legacy data must produce a degraded score, not crash
// a whole retrieval pool), and zero-length or zero-magnitude inputs
// score 0.0, meaning "no signal".
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}

	if len(a) != len(b) {
		mismatches.Add(1)
		logger.Warn("cosine: dimension mismatch (%d vs %d), comparing first %d", len(a), len(b), n)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0.0
	}

	return dot / denom
}
