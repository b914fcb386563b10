package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockLLM struct {
	Response string
	Err      error
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *mockLLM) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return m.Generate(ctx, prompt)
}

func TestRank(t *testing.T) {
	r := NewChunkReranker(&mockLLM{Response: "2, 0, 1"})

	order, err := r.Rank(context.Background(), "question", []string{"a", "b", "c"})

	assert.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestRank_EmptyAndSingle(t *testing.T) {
	r := NewChunkReranker(&mockLLM{})

	order, err := r.Rank(context.Background(), "q", nil)
	assert.NoError(t, err)
	assert.Nil(t, order)

	order, err = r.Rank(context.Background(), "q", []string{"only"})
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, order)
}

func TestRank_LLMFailureFallsBackToRetrievalOrder(t *testing.T) {
	r := NewChunkReranker(&mockLLM{Err: fmt.Errorf("unavailable")})

	order, err := r.Rank(context.Background(), "q", []string{"a", "b", "c"})

	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestParseIndices(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, parseIndices("2, 0, 1", 3))
}

func TestParseIndices_DropsOutOfRangeAndDuplicates(t *testing.T) {
	assert.Equal(t, []int{1, 0, 2}, parseIndices("1, 7, 1, 0", 3))
}

func TestParseIndices_AppendsMissing(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1, 3}, parseIndices("2, 0", 4))
}

func TestParseIndices_Garbage(t *testing.T) {
	assert.Equal(t, []int{0, 1}, parseIndices("no numbers here", 2))
}
