package stat

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/role"
	sent "github.com/revelaction/drawgram/sentence"
)

var loveYou = sent.Sentence{Tokens: []sent.Token{
	{Idx: 0, Head: 2, Pos: "PRON", Dep: "nsubj", Tag: "PRP", Text: "I", Lemma: "I"},
	{Idx: 2, Head: 2, Pos: "VERB", Dep: "ROOT", Tag: "VBP", Text: "love", Lemma: "love"},
	{Idx: 7, Head: 2, Pos: "PRON", Dep: "dobj", Tag: "PRP", Text: "you", Lemma: "you"},
	{Idx: 10, Head: 2, Pos: "PUNCT", Dep: "punct", Tag: ".", Text: ".", Lemma: "."},
}}

var helloThere = sent.Sentence{Tokens: []sent.Token{
	{Idx: 0, Head: 0, Pos: "INTJ", Dep: "ROOT", Tag: "UH", Text: "Hello", Lemma: "hello"},
	{Idx: 6, Head: 0, Pos: "ADV", Dep: "advmod", Tag: "RB", Text: "there", Lemma: "there"},
}}

func TestAggregate(t *testing.T) {
	h := NewHandler(annotate.New(nil, zerolog.Nop()))

	h.Aggregate(sent.Doc{Sentences: []sent.Sentence{loveYou, helloThere}})
	stats := h.Get()

	assert.Equal(t, 1, stats.NumDocs)
	assert.Equal(t, 2, stats.NumSentences)
	assert.Equal(t, 6, stats.NumTokens)
	assert.Equal(t, 3, stats.TokensPerSentenceMean)
	assert.Equal(t, map[int]int{4: 1, 2: 1}, stats.TokensPerSentenceDis)

	assert.Equal(t, 1, stats.NumWithoutRoles)
	assert.Equal(t, map[role.Role]int{role.Subject: 1, role.Verb: 1, role.Object: 1}, stats.Roles)
	assert.Equal(t, 1, stats.Links)
	assert.Equal(t, 0, stats.NumClauses)
	assert.Equal(t, 0, stats.MaxDepth)
}

func TestAggregateDocs(t *testing.T) {
	h := NewHandler(annotate.New(nil, zerolog.Nop()))

	h.Aggregate(sent.Doc{Sentences: []sent.Sentence{loveYou}})
	h.Aggregate(sent.Doc{})
	h.AggregateSentence(loveYou)

	stats := h.Get()
	assert.Equal(t, 2, stats.NumDocs)
	assert.Equal(t, 2, stats.NumSentences)
	assert.Equal(t, 2, stats.Roles[role.Verb])
}

func TestEmpty(t *testing.T) {
	stats := NewHandler(annotate.New(nil, zerolog.Nop())).Get()

	assert.Zero(t, stats.NumSentences)
	assert.Zero(t, stats.TokensPerSentenceMean)
}
