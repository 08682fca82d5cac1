package cli

import (
	"bytes"
	"context"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/embedding"
	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/services"
	"github.com/ferrule-labs/askdocs/internal/extractors"
	"github.com/ferrule-labs/askdocs/internal/postprocessors"
	"github.com/ferrule-labs/askdocs/internal/postprocessors/chunker"
)

// stubLLM returns a canned completion.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) ModelName() string            { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

// setupTestServices wires real services over in-memory stores and
// returns a cleanup function restoring the previous wiring.
func setupTestServices() func() {
	docStore := memory.NewDocumentStore()
	folderStore := memory.NewFolderStore()
	embedder := embedding.New(nil, domain.DefaultDimensions)

	registry := extractors.NewRegistry()
	extractors.RegisterDefaults(registry)
	pipeline := postprocessors.NewPipeline(chunker.New())

	oldIngest := ingestService
	oldAsk := askService
	oldDocument := documentService
	oldFolder := folderService
	oldSettings := settingsService

	ingestService = services.NewIngestService(docStore, registry, pipeline, embedder)
	askService = services.NewAskService(docStore, embedder, &stubLLM{response: "Stub answer."}, domain.RetrievalSettings{})
	documentService = services.NewDocumentService(docStore)
	folderService = services.NewFolderService(folderStore, docStore)
	settingsService = services.NewSettingsService(memory.NewConfigStore(), nil)

	seedTestDocument(docStore, embedder)

	return func() {
		ingestService = oldIngest
		askService = oldAsk
		documentService = oldDocument
		folderService = oldFolder
		settingsService = oldSettings
	}
}

// seedTestDocument stores one document for the default owner, embedded
// with the same lexical fallback the test embedder uses so retrieval
// finds it.
func seedTestDocument(store *memory.DocumentStore, embedder driven.Embedder) {
	text := "This is the content of the test document."
	vec := embedder.Embed(context.Background(), text)

	doc := &domain.Document{
		ID:      "doc-1",
		OwnerID: "default",
		Title:   "Test Document 1",
		Type:    domain.TypeText,
		Folder:  domain.DefaultFolder,
	}
	passages := []domain.Passage{{
		ID:         "doc-1-p0",
		DocumentID: "doc-1",
		Text:       text,
		Position:   0,
		Embedding:  vec.Vector,
		Dimensions: len(vec.Vector),
		Metadata:   domain.PassageMetadata{Source: doc.Title},
	}}
	//nolint:errcheck // Test seeding cannot fail with valid input
	_ = store.SaveDocument(context.Background(), doc, passages)
}

// executeCommand runs the root command with args, capturing output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
