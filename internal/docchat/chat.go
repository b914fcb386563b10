package docchat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/llm"
)

// Message is one chat turn. History is carried per request; the service
// itself holds no session state.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatService struct {
	LLM          llm.LLMClient
	Embedder     llm.EmbedderClient
	Store        *Store
	Reranker     *llm.ChunkReranker
	SystemPrompt string
	TopK         int
	Log          *logrus.Logger
}

func NewChatService(client llm.LLMClient, embedder llm.EmbedderClient, store *Store, systemPrompt string, log *logrus.Logger) *ChatService {
	return &ChatService{
		LLM:          client,
		Embedder:     embedder,
		Store:        store,
		Reranker:     llm.NewChunkReranker(client),
		SystemPrompt: systemPrompt,
		TopK:         5,
		Log:          log,
	}
}

// Ask answers a question grounded in the stored documents.
func (c *ChatService) Ask(ctx context.Context, question string, history []Message) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question must not be empty")
	}
	if c.Embedder == nil {
		return "", fmt.Errorf("document chat requires an embedding-capable LLM provider")
	}

	vec, err := c.Embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	hits, err := c.Store.SearchSimilar(ctx, vec, c.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	contexts := make([]string, len(hits))
	for i, h := range hits {
		contexts[i] = h.Content
	}

	if order, err := c.Reranker.Rank(ctx, question, contexts); err == nil && len(order) == len(contexts) {
		reordered := make([]string, len(contexts))
		for i, idx := range order {
			reordered[i] = contexts[idx]
		}
		contexts = reordered
	}

	system := c.buildSystem(contexts)
	prompt := renderHistory(history) + question

	answer, err := c.LLM.GenerateWithSystem(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

func (c *ChatService) buildSystem(contexts []string) string {
	tmpl := c.SystemPrompt
	if tmpl == "" {
		tmpl = defaultChatSystem
	}
	return fmt.Sprintf(tmpl, strings.Join(contexts, "\n\n"))
}

func renderHistory(history []Message) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	b.WriteString("\nCurrent question: ")
	return b.String()
}

const defaultChatSystem = `You are a knowledgeable AI assistant focused on providing detailed and well-structured responses.

Guidelines for your responses:
- Provide comprehensive and detailed answers
- Use bullet points to break down complex information
- Include specific examples or references from the documents when relevant
- If you cannot answer based on the context, clearly state that

Use the following context to answer the user's questions:

Context:
%s`
