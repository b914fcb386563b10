// Package docchat implements the document-chat variant: PDF/URL ingestion
// into a vector store and retrieval-grounded chat over the stored chunks.
package docchat

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const defaultClass = "DocumentChunk"

// ChunkHit is one retrieved chunk with its vector distance.
type ChunkHit struct {
	Content  string  `json:"content"`
	Title    string  `json:"title"`
	Source   string  `json:"source"`
	Distance float64 `json:"distance"`
}

// Store wraps the Weaviate collaborator. Vectors are supplied by the
// caller; the class is created with the vectorizer disabled.
type Store struct {
	client *weaviate.Client
	class  string
}

func NewStore(host, scheme, class string) (*Store, error) {
	if class == "" {
		class = defaultClass
	}
	client, err := weaviate.NewClient(weaviate.Config{Host: host, Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Store{client: client, class: class}, nil
}

// EnsureSchema creates the chunk class if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(s.class).Do(ctx)
	if err != nil {
		return fmt.Errorf("check class existence: %w", err)
	}
	if exists {
		return nil
	}

	class := &models.Class{
		Class:      s.class,
		Vectorizer: "none",
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
		},
	}
	if err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", s.class, err)
	}
	return nil
}

// InsertChunk stores one embedded chunk.
func (s *Store) InsertChunk(ctx context.Context, title, source, content string, index int, vector []float32) error {
	_, err := s.client.Data().Creator().
		WithClassName(s.class).
		WithProperties(map[string]interface{}{
			"content":    content,
			"title":      title,
			"source":     source,
			"chunkIndex": index,
		}).
		WithVector(vector).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("insert chunk %d of %s: %w", index, title, err)
	}
	return nil
}

// SearchSimilar returns the k nearest chunks to the query vector.
func (s *Store) SearchSimilar(ctx context.Context, vector []float32, k int) ([]ChunkHit, error) {
	if k <= 0 {
		k = 5
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "title"},
		{Name: "source"},
		{Name: "_additional { distance }"},
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("similarity search: %s", result.Errors[0].Message)
	}

	return parseHits(result.Data, s.class), nil
}

func parseHits(data map[string]models.JSONObject, class string) []ChunkHit {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}
	rows, ok := get[class].([]interface{})
	if !ok {
		return nil
	}

	hits := make([]ChunkHit, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		hit := ChunkHit{}
		if v, ok := m["content"].(string); ok {
			hit.Content = v
		}
		if v, ok := m["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := m["source"].(string); ok {
			hit.Source = v
		}
		if add, ok := m["_additional"].(map[string]interface{}); ok {
			if d, ok := add["distance"].(float64); ok {
				hit.Distance = d
			}
		}
		hits = append(hits, hit)
	}
	return hits
}
