package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// mockExtractor returns the raw bytes as text.
type mockExtractor struct {
	docType domain.DocumentType
	err     error
}

func (m *mockExtractor) Type() domain.DocumentType { return m.docType }

func (m *mockExtractor) Extract(_ context.Context, raw []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return string(raw), nil
}

// mockRegistry hands out pass-through extractors for every type.
type mockRegistry struct {
	extractErr error
	getErr     error
}

func (m *mockRegistry) Get(t domain.DocumentType) (driven.Extractor, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &mockExtractor{docType: t, err: m.extractErr}, nil
}

// mockPipeline splits text into one passage per blank-line-separated
// paragraph, or returns a fixed passage set when one is configured.
type mockPipeline struct {
	passages []domain.Passage
	err      error
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document, text string) ([]domain.Passage, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.passages != nil {
		return m.passages, nil
	}

	parts := strings.Split(text, "\n\n")
	passages := make([]domain.Passage, 0, len(parts))
	for i, part := range parts {
		passages = append(passages, domain.Passage{
			ID:         fmt.Sprintf("%s-p%d", doc.ID, i),
			DocumentID: doc.ID,
			Text:       part,
			Position:   i,
			Metadata:   domain.PassageMetadata{Source: doc.Title},
		})
	}
	return passages, nil
}

// mockEmbedder returns fixed vectors keyed by text. Safe for the
// concurrent calls ingestion makes, and tracks how many Embed calls
// were in flight at once.
type mockEmbedder struct {
	mu          sync.Mutex
	vectors     map[string][]float32
	mode        driven.EmbeddingMode
	embedCalls  int
	sketchCalls int
	inFlight    int
	maxInFlight int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors: make(map[string][]float32),
		mode:    driven.ModeProvider,
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) driven.Embedding {
	m.mu.Lock()
	m.embedCalls++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	vector := m.vectorFor(text)
	mode := m.mode
	m.mu.Unlock()

	// Hold the call open long enough for concurrent callers to overlap.
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()
	return driven.Embedding{Vector: vector, Mode: mode}
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) []driven.Embedding {
	results := make([]driven.Embedding, len(texts))
	for i, text := range texts {
		results[i] = m.Embed(ctx, text)
	}
	return results
}

func (m *mockEmbedder) Sketch(text string) driven.Embedding {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sketchCalls++
	return driven.Embedding{Vector: m.vectorFor(text), Mode: driven.ModeSketch}
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return []float32{1, 0, 0}
}

// mockLLM records prompts and returns a canned completion.
type mockLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore serves prompts from a map.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	prompt, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt: %s", name)
	}
	return prompt, nil
}

// mockValidator fails provider validation with configured errors.
type mockValidator struct {
	embedErr error
	llmErr   error
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error { return m.embedErr }
func (m *mockValidator) ValidateLLM(_ *domain.LLMSettings) error             { return m.llmErr }
