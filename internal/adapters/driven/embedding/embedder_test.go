package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// mockProvider implements driven.EmbeddingService for testing.
type mockProvider struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockProvider) Dimensions() int        { return len(m.vector) }
func (m *mockProvider) ModelName() string      { return "mock" }
func (m *mockProvider) Ping(context.Context) error { return nil }
func (m *mockProvider) Close() error           { return nil }

func TestEmbed_ProviderPath(t *testing.T) {
	provider := &mockProvider{vector: make([]float32, 128)}
	provider.vector[3] = 0.5

	e := New(provider, 128)
	result := e.Embed(context.Background(), "some text")

	assert.Equal(t, driven.ModeProvider, result.Mode)
	assert.False(t, result.Mode.Degraded())
	require.Len(t, result.Vector, 128)
	assert.Equal(t, float32(0.5), result.Vector[3])
}

func TestEmbed_ProviderFailureFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("connection refused")}

	e := New(provider, 128)
	result := e.Embed(context.Background(), "invoice overdue payment")

	assert.Equal(t, driven.ModeLexical, result.Mode)
	assert.True(t, result.Mode.Degraded())
	assert.Len(t, result.Vector, 128)
}

func TestEmbed_EmptyProviderVectorFallsBack(t *testing.T) {
	provider := &mockProvider{vector: nil}

	e := New(provider, 128)
	result := e.Embed(context.Background(), "text")

	assert.Equal(t, driven.ModeLexical, result.Mode)
	assert.Len(t, result.Vector, 128)
}

func TestEmbed_NilProvider(t *testing.T) {
	e := New(nil, 128)
	result := e.Embed(context.Background(), "text with several words inside")

	assert.Equal(t, driven.ModeLexical, result.Mode)
	assert.Len(t, result.Vector, 128)
}

func TestEmbed_ReconcilesLongerVectors(t *testing.T) {
	// Provider speaks 768 dimensions; canonical is 128.
	provider := &mockProvider{vector: make([]float32, 768)}
	for i := range provider.vector {
		provider.vector[i] = 1
	}

	e := New(provider, 128)
	result := e.Embed(context.Background(), "text")

	require.Len(t, result.Vector, 128)
	assert.Equal(t, float32(1), result.Vector[127])
}

func TestEmbed_ReconcilesShorterVectors(t *testing.T) {
	provider := &mockProvider{vector: []float32{1, 2, 3}}

	e := New(provider, 128)
	result := e.Embed(context.Background(), "text")

	require.Len(t, result.Vector, 128)
	assert.Equal(t, float32(3), result.Vector[2])
	assert.Zero(t, result.Vector[3])
}

func TestEmbed_EmptyStringStillCanonical(t *testing.T) {
	e := New(nil, 128)
	result := e.Embed(context.Background(), "")
	assert.Len(t, result.Vector, 128)
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	e := New(nil, 32)

	results := e.EmbedBatch(context.Background(), []string{"first text here", "second text here"})
	require.Len(t, results, 2)
	assert.NotEqual(t, results[0].Vector, results[1].Vector)
}

func TestSketch_NoProviderCall(t *testing.T) {
	provider := &mockProvider{vector: make([]float32, 128)}
	e := New(provider, 128)

	result := e.Sketch("short chunk")

	assert.Equal(t, driven.ModeSketch, result.Mode)
	assert.Len(t, result.Vector, 128)
	assert.Zero(t, provider.calls)
}

func TestEmbed_CancelledContextFallsBack(t *testing.T) {
	provider := &mockProvider{vector: make([]float32, 128)}
	e := New(provider, 128, WithRateLimit(0.0001, 1))

	ctx, cancel := context.WithCancel(context.Background())
	// Drain the single burst token, then cancel so Wait cannot succeed.
	_ = e.Embed(ctx, "first")
	cancel()

	result := e.Embed(ctx, "second")
	assert.Equal(t, driven.ModeLexical, result.Mode)
	assert.Len(t, result.Vector, 128)
}
