// Package stat aggregates annotation statistics over documents.
package stat

import (
	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/role"
	sent "github.com/revelaction/drawgram/sentence"
)

type Handler struct {
	pipeline *annotate.Pipeline
	stats    Stats
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// sentences the rules give no role to, the fallback candidates
	NumWithoutRoles int

	// clause connectors and the deepest level seen
	NumClauses int
	MaxDepth   int

	Roles  map[role.Role]int
	Chunks map[annotate.Kind]int
	Links  int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler(p *annotate.Pipeline) *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		Roles:                map[role.Role]int{},
		Chunks:               map[annotate.Kind]int{},
	}
	return &Handler{
		pipeline: p,
		stats:    stats,
	}
}

// Aggregate annotates every sentence of doc and adds it to the stats.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	for _, sentence := range doc.Sentences {
		h.AggregateSentence(sentence)
	}
}

func (h *Handler) AggregateSentence(s sent.Sentence) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(s.Tokens)
	h.stats.TokensPerSentenceDis[len(s.Tokens)]++
	h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences

	tokens := h.pipeline.Annotate(s)
	if !annotate.HasRoles(tokens) {
		h.stats.NumWithoutRoles++
	}

	for _, t := range tokens {
		if t.Role1 != role.None {
			h.stats.Roles[t.Role1]++
		}

		if t.Level.IsConnector() {
			h.stats.NumClauses++
		}

		h.stats.MaxDepth = max(h.stats.MaxDepth, t.Level.Depth())

		if t.Chunk != nil && t.Chunk.Kind != "" {
			h.stats.Chunks[t.Chunk.Kind]++
		}

		h.stats.Links += len(t.Combine)
	}
}
