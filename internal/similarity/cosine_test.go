package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.3, 0.2, 0.1},
		{-1, 2, -3, 4},
	}

	for _, v := range vectors {
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	v := []float32{0.5, 0.1, 0.9}
	zeros := []float32{0, 0, 0}

	assert.Equal(t, 0.0, Cosine(v, zeros))
	assert.Equal(t, 0.0, Cosine(zeros, zeros))
}

func TestCosine_EmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(nil, []float32{1, 2}))
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, nil))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float32{0.1, 0.7, 0.3}
	b := []float32{0.9, 0.2, 0.4}

	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosine_OppositeVectors(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{-1, -1}

	assert.InDelta(t, -1.0, Cosine(a, b), 1e-9)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	before := MismatchCount()

	// Scores over the common prefix instead of failing.
	a := []float32{1, 0, 0, 0}
	b := []float32{1, 0}
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)

	assert.Equal(t, before+1, MismatchCount())
}

func TestCosine_MismatchedZeroPrefix(t *testing.T) {
	// Common prefix is all zeros even though the longer vector is not.
	a := []float32{0, 0}
	b := []float32{0, 0, 5, 5}

	assert.Equal(t, 0.0, Cosine(a, b))
}
