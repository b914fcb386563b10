package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChunkReranker reorders retrieved document chunks by relevance to a chat
// question before they are stuffed into the answer prompt. Vector distance
// alone ranks near-duplicates poorly; one cheap completion fixes the order.
type ChunkReranker struct {
	LLM LLMClient
}

func NewChunkReranker(client LLMClient) *ChunkReranker {
	return &ChunkReranker{LLM: client}
}

const rerankSnippetLen = 240

func (r *ChunkReranker) Rank(ctx context.Context, question string, chunks []string) ([]int, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if len(chunks) == 1 {
		return []int{0}, nil
	}

	var b strings.Builder
	for i, c := range chunks {
		if len(c) > rerankSnippetLen {
			c = c[:rerankSnippetLen] + "..."
		}
		fmt.Fprintf(&b, "[%d] %s\n", i, c)
	}

	prompt := fmt.Sprintf(`Question: %s

Document excerpts:
%s
Order the excerpts above from most to least useful for answering the question.
Output ONLY the excerpt indices separated by commas, e.g. 0, 2, 1.`, question, b.String())

	resp, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		// Retrieval order is an acceptable answer; never fail the chat turn
		// over a reranking call.
		return identityOrder(len(chunks)), nil
	}

	order := parseIndices(resp, len(chunks))
	if len(order) == 0 {
		return identityOrder(len(chunks)), nil
	}
	return order, nil
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// parseIndices extracts a de-duplicated index permutation from the model's
// reply, dropping out-of-range values and appending any indices the model
// forgot so no chunk is lost.
func parseIndices(s string, n int) []int {
	re := regexp.MustCompile(`\d+`)
	seen := make(map[int]bool, n)
	var order []int
	for _, m := range re.FindAllString(s, -1) {
		i, err := strconv.Atoi(m)
		if err != nil || i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		order = append(order, i)
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}
