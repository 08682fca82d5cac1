package chunker

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func testDoc() *domain.Document {
	return &domain.Document{ID: "doc-1", OwnerID: "user-1", Title: "report.txt", Type: domain.TypeText}
}

func sentences(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog once again. ")
	}
	return b.String()
}

func TestProcess_InvalidTargetChunks(t *testing.T) {
	for _, target := range []int{0, -3} {
		p := New(WithTargetChunks(target))
		_, err := p.Process(context.Background(), testDoc(), sentences(50), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProcess_SmallText_SingleChunk(t *testing.T) {
	text := "  A short note about invoices.  "
	p := New()

	passages, err := p.Process(context.Background(), testDoc(), text, nil)
	require.NoError(t, err)
	require.Len(t, passages, 1)

	assert.Equal(t, strings.TrimSpace(text), passages[0].Text)
	assert.Equal(t, 0, passages[0].Metadata.StartIndex)
	assert.Equal(t, len(text), passages[0].Metadata.EndIndex)
	assert.Equal(t, 0, passages[0].Position)
	assert.Equal(t, "report.txt", passages[0].Metadata.Source)
}

func TestProcess_WhitespaceOnly(t *testing.T) {
	p := New()
	passages, err := p.Process(context.Background(), testDoc(), "   \n\t  ", nil)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestProcess_LargeText_SpanInvariants(t *testing.T) {
	text := sentences(200) // ~11k bytes
	p := New()

	passages, err := p.Process(context.Background(), testDoc(), text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, passages)

	baseChunkSize := (len(text) + DefaultTargetChunks - 1) / DefaultTargetChunks
	effective := baseChunkSize
	if effective < 500 {
		effective = 500
	}
	maxOverlap := int(math.Floor(float64(effective) * 0.2))

	prevStart := -1
	for i, passage := range passages {
		assert.GreaterOrEqual(t, passage.Metadata.StartIndex, 0)
		assert.Greater(t, passage.Metadata.EndIndex, passage.Metadata.StartIndex)
		assert.LessOrEqual(t, passage.Metadata.EndIndex, len(text))
		assert.Greater(t, passage.Metadata.StartIndex, prevStart, "spans must advance")
		assert.Equal(t, i, passage.Position)
		prevStart = passage.Metadata.StartIndex

		if i > 0 {
			overlap := passages[i-1].Metadata.EndIndex - passage.Metadata.StartIndex
			assert.LessOrEqual(t, overlap, maxOverlap)
		}
	}
}

func TestProcess_SnapsToSentenceBoundary(t *testing.T) {
	// One long run without periods, then a period late in the first
	// chunk window; the first cut should land just after it.
	filler := strings.Repeat("a", 1900)
	text := filler + ". " + strings.Repeat("b", 2100)
	p := New(WithTargetChunks(2))

	passages, err := p.Process(context.Background(), testDoc(), text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, passages)

	assert.Equal(t, len(filler)+1, passages[0].Metadata.EndIndex)
	assert.True(t, strings.HasSuffix(passages[0].Text, "."))
}

func TestProcess_OverlapCapGuaranteesProgress(t *testing.T) {
	// Requested overlap far exceeds the chunk size; the 20% cap must
	// keep the scan advancing and terminating.
	text := sentences(100)
	p := New(WithOverlap(100000))

	passages, err := p.Process(context.Background(), testDoc(), text, nil)
	require.NoError(t, err)
	require.NotEmpty(t, passages)
	assert.LessOrEqual(t, len(passages), 2*DefaultTargetChunks)
}

func TestProcess_TargetCountRoughlyHonoured(t *testing.T) {
	text := sentences(60) // ~3.4k bytes
	p := New()

	passages, err := p.Process(context.Background(), testDoc(), text, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(passages), 1)
	assert.LessOrEqual(t, len(passages), DefaultTargetChunks)
}

func TestName(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}
