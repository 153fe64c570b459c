package retrieval

import (
	"context"
	"strings"
)

// Entry is one keyword-matched answer of the in-memory knowledge base.
type Entry struct {
	Keywords   []string
	Answer     string
	Source     string
	Confidence float64
}

// KeywordRetriever answers queries from a fixed knowledge base by keyword
// matching. Useful for tests and offline runs.
type KeywordRetriever struct {
	entries []Entry
}

func NewKeywordRetriever(entries []Entry) *KeywordRetriever {
	return &KeywordRetriever{entries: entries}
}

// DefaultKnowledge covers the dispatch rules the builtin plans refer to.
func DefaultKnowledge() []Entry {
	return []Entry{
		{
			Keywords:   []string{"sending", "send side"},
			Answer:     "according to the grid topology the device sits on the sending end",
			Source:     "topology database",
			Confidence: 0.8,
		},
		{
			Keywords:   []string{"receiving", "receive side"},
			Answer:     "according to the grid topology the device sits on the receiving end",
			Source:     "topology database",
			Confidence: 0.8,
		},
		{
			Keywords:   []string{"limit", "regulation"},
			Answer:     "DC transfer limits must respect both sending-end and receiving-end capability",
			Source:     "dispatch regulations",
			Confidence: 0.8,
		},
		{
			Keywords:   []string{"outage", "fault"},
			Answer:     "a device outage must be assessed for its impact on DC transfer capability",
			Source:     "fault handling rules",
			Confidence: 0.8,
		},
	}
}

func (r *KeywordRetriever) Query(_ context.Context, text string) (Result, error) {
	lowered := strings.ToLower(text)
	for _, entry := range r.entries {
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return Result{
					Query:      text,
					Success:    true,
					Answer:     entry.Answer,
					Raw:        entry,
					Sources:    []string{entry.Source},
					Confidence: entry.Confidence,
				}, nil
			}
		}
	}

	return Result{
		Query:      text,
		Success:    true,
		Answer:     "no relevant information found",
		Confidence: 0,
	}, nil
}
