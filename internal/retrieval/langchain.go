package retrieval

import (
	"context"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

// VectorStoreRetriever adapts a langchaingo vector store to the facade. The
// top-ranked document becomes the primary answer; the full document slice is
// returned as raw material for multi-output rag steps.
type VectorStoreRetriever struct {
	store vectorstores.VectorStore
	topK  int
}

func NewVectorStoreRetriever(store vectorstores.VectorStore, topK int) *VectorStoreRetriever {
	if topK <= 0 {
		topK = 3
	}
	return &VectorStoreRetriever{store: store, topK: topK}
}

func (r *VectorStoreRetriever) Query(ctx context.Context, text string) (Result, error) {
	docs, err := r.store.SimilaritySearch(ctx, text, r.topK)
	if err != nil {
		return Result{Query: text, ErrMessage: err.Error()}, nil
	}
	if len(docs) == 0 {
		return Result{Query: text, Success: true, Answer: "no relevant information found"}, nil
	}

	return Result{
		Query:      text,
		Success:    true,
		Answer:     docs[0].PageContent,
		Raw:        docs,
		Sources:    sources(docs),
		Confidence: float64(docs[0].Score),
	}, nil
}

func sources(docs []schema.Document) []string {
	var out []string
	for _, d := range docs {
		if s, found := d.Metadata["source"].(string); found {
			out = append(out, s)
		}
	}
	return out
}
