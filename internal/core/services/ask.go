package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// fallbackAnswer is returned verbatim when generation fails. Asking
// never propagates a generation error to the caller.
const fallbackAnswer = "I'm sorry, I encountered an error while processing your request. Please try again."

// Generation parameters for answer synthesis.
const (
	answerMaxTokens   = 1024
	answerTemperature = 0.7
)

// defaultAnswerWithContextPrompt is the fallback prompt when no
// PromptStore is configured.
const defaultAnswerWithContextPrompt = `You are a helpful assistant that answers questions using the provided context.
Base your answer only on the context below. If the context does not contain
enough information to answer, say so plainly.

Context:
%s

Question: %s

Answer:`

// defaultAnswerGeneralPrompt is the fallback prompt when no PromptStore
// is configured.
const defaultAnswerGeneralPrompt = `You are a helpful assistant. The user has no documents available, so answer
from general knowledge and mention that the answer is not based on their
documents.

Question: %s

Answer:`

// AskService answers questions grounded in the owner's documents.
type AskService struct {
	retriever   *retriever
	embedder    driven.Embedder
	llm         driven.LLMService // may be nil: permanent fallback answers
	promptStore driven.PromptStore
}

// NewAskService creates a new ask service. llm may be nil, in which
// case every answer is the fixed fallback message.
func NewAskService(
	docStore driven.DocumentStore,
	embedder driven.Embedder,
	llm driven.LLMService,
	defaults domain.RetrievalSettings,
) *AskService {
	return &AskService{
		retriever: newRetriever(docStore, defaults),
		embedder:  embedder,
		llm:       llm,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *AskService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask embeds the question, retrieves the owner's most relevant
// passages, and generates an answer from the assembled context.
func (s *AskService) Ask(
	ctx context.Context, ownerID, question string, opts domain.RetrievalOptions,
) (*domain.Answer, error) {
	logger.Section("Ask")

	question = strings.TrimSpace(question)
	if ownerID == "" || question == "" {
		return nil, fmt.Errorf("%w: owner and question are required", domain.ErrInvalidInput)
	}
	logger.Debug("Question: %q", question)

	results, err := s.Retrieve(ctx, ownerID, question, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Retrieved %d passages", len(results))

	grounding := assembleContext(results)

	var prompt string
	if grounding.Grounded {
		template := s.loadPrompt(driven.PromptAnswerWithContext, defaultAnswerWithContextPrompt)
		prompt = fmt.Sprintf(template, grounding.Text, question)
	} else {
		logger.Debug("No grounding found, answering from general knowledge")
		template := s.loadPrompt(driven.PromptAnswerGeneral, defaultAnswerGeneralPrompt)
		prompt = fmt.Sprintf(template, question)
	}

	answer := &domain.Answer{
		Citations: grounding.Citations,
		Grounded:  grounding.Grounded,
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		answer.Text = fallbackAnswer
		answer.GenerationFailed = true
		return answer, nil
	}

	answer.Text = strings.TrimSpace(text)
	return answer, nil
}

// Retrieve embeds the question and returns the raw ranked passages,
// strictly scoped to the owner.
func (s *AskService) Retrieve(
	ctx context.Context, ownerID, question string, opts domain.RetrievalOptions,
) ([]domain.RetrievalResult, error) {
	question = strings.TrimSpace(question)
	if ownerID == "" || question == "" {
		return nil, fmt.Errorf("%w: owner and question are required", domain.ErrInvalidInput)
	}

	embedding := s.embedder.Embed(ctx, question)
	if embedding.Mode.Degraded() {
		logger.Warn("Query embedded with lexical fallback, retrieval quality degraded")
	}

	return s.retriever.retrieve(ctx, ownerID, embedding.Vector, opts)
}

// generate runs the LLM, treating a missing service as a failure.
func (s *AskService) generate(ctx context.Context, prompt string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	return s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *AskService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
