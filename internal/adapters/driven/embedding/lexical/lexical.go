// Package lexical provides the deterministic local embedding fallback.
// It is a bag-of-words sketch, not a learned embedding: it exists so
// the pipeline keeps functioning when the embedding provider is down,
// at explicitly degraded retrieval quality.
package lexical

import (
	"math"
	"regexp"
	"strings"
)

// DefaultDimensions is the canonical embedding length.
const DefaultDimensions = 128

// frequencyScale normalises raw word counts into vector values.
const frequencyScale = 0.1

// sketchScale keeps the sinusoidal short-text sketch small.
const sketchScale = 0.01

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Embedder produces deterministic local vectors of a fixed length.
type Embedder struct {
	dimensions int
}

// New creates a lexical embedder with the given dimensionality.
// Non-positive dimensions fall back to DefaultDimensions.
func New(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Dimensions returns the vector length every method produces.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Embed builds a bag-of-words vector: each of the first D distinct
// words (first-seen order) contributes frequency*0.1 at the slot its
// hash selects. Unfilled slots stay 0. Identical text always produces
// the identical vector.
func (e *Embedder) Embed(text string) []float32 {
	words := tokenize(text)

	type entry struct {
		word string
		freq int
	}
	var order []entry
	index := make(map[string]int)

	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if i, seen := index[word]; seen {
			order[i].freq++
			continue
		}
		index[word] = len(order)
		order = append(order, entry{word: word, freq: 1})
	}

	vector := make([]float32, e.dimensions)
	for i, ent := range order {
		if i >= e.dimensions {
			break
		}
		slot := int(hash(ent.word)) % e.dimensions
		if slot < 0 {
			slot += e.dimensions
		}
		vector[slot] = float32(ent.freq) * frequencyScale
	}

	return vector
}

// Sketch builds a sinusoidal pseudo-embedding seeded by a character
// hash of the whole text. It is cheaper than Embed and used for very
// short chunks where a provider round-trip is not worth the latency.
func (e *Embedder) Sketch(text string) []float32 {
	seed := float64(hash(text))

	vector := make([]float32, e.dimensions)
	for i := range vector {
		vector[i] = float32(math.Sin(seed+float64(i)) * sketchScale)
	}

	return vector
}

// tokenize lowercases, strips non-word characters to whitespace and
// splits into words.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonWord.ReplaceAllString(text, " ")
	return strings.Fields(text)
}

// hash is a polynomial rolling hash folded into the signed 32-bit
// range, matching the historical on-disk slot assignment. Changing it
// would silently reshuffle every stored fallback vector.
func hash(s string) int32 {
	var h int32
	for _, b := range []byte(s) {
		h = (h << 5) - h + int32(b)
	}
	return h
}
