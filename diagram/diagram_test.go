package diagram

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/parser"
	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/sentence"
)

type fakeParser map[string]sentence.Sentence

func (p fakeParser) Parse(_ context.Context, text string) (sentence.Sentence, error) {
	s, ok := p[text]
	if !ok {
		return sentence.Sentence{}, parser.ErrNoParse
	}
	return s, nil
}

type fakeFallback struct {
	calls  int
	tokens []annotate.Token
	err    error
}

func (f *fakeFallback) Annotate(_ context.Context, s sentence.Sentence) ([]annotate.Token, error) {
	f.calls++
	return f.tokens, f.err
}

var loveYou = sentence.Sentence{Text: "I love you.", Tokens: []sentence.Token{
	{Idx: 0, Head: 2, Pos: "PRON", Dep: "nsubj", Tag: "PRP", Text: "I", Lemma: "I"},
	{Idx: 2, Head: 2, Pos: "VERB", Dep: "ROOT", Tag: "VBP", Text: "love", Lemma: "love", Morph: sentence.Morph{Tense: "Pres", VerbForm: "Fin"}},
	{Idx: 7, Head: 2, Pos: "PRON", Dep: "dobj", Tag: "PRP", Text: "you", Lemma: "you"},
	{Idx: 10, Head: 2, Pos: "PUNCT", Dep: "punct", Tag: ".", Text: ".", Lemma: "."},
}}

var helloThere = sentence.Sentence{Text: "Hello there.", Tokens: []sentence.Token{
	{Idx: 0, Head: 0, Pos: "INTJ", Dep: "ROOT", Tag: "UH", Text: "Hello", Lemma: "hello"},
	{Idx: 6, Head: 0, Pos: "ADV", Dep: "advmod", Tag: "RB", Text: "there", Lemma: "there"},
	{Idx: 11, Head: 0, Pos: "PUNCT", Dep: "punct", Tag: ".", Text: ".", Lemma: "."},
}}

func newService(fb Annotator) *Service {
	return &Service{
		Parser:   fakeParser{"I love you.": loveYou, "Hello there.": helloThere},
		Pipeline: annotate.New(nil, zerolog.Nop()),
		Fallback: fb,
		Logger:   zerolog.Nop(),
	}
}

func TestTextRules(t *testing.T) {
	fb := &fakeFallback{}
	a, err := newService(fb).Text(context.Background(), "I love you.")
	require.NoError(t, err)

	assert.Equal(t, 0, fb.calls)
	assert.False(t, a.Fallback)
	assert.Equal(t, "I love you.", a.Text)
	assert.Equal(t, role.Verb, a.Tokens[1].Role1)
	assert.Equal(t, role.Object, a.Tokens[2].Role1)
}

func TestTextFallback(t *testing.T) {
	fb := &fakeFallback{tokens: []annotate.Token{
		{Token: helloThere.Tokens[0], Role1: role.Verb},
	}}

	a, err := newService(fb).Text(context.Background(), "Hello there.")
	require.NoError(t, err)

	assert.Equal(t, 1, fb.calls)
	assert.True(t, a.Fallback)
	assert.Len(t, a.Tokens, 1)
}

func TestTextForcedFallback(t *testing.T) {
	fb := &fakeFallback{}
	svc := newService(fb)
	svc.Force = true

	a, err := svc.Text(context.Background(), "I love you.")
	require.NoError(t, err)

	assert.Equal(t, 1, fb.calls)
	assert.True(t, a.Fallback)
	assert.Empty(t, a.Tokens)
}

func TestTextFallbackError(t *testing.T) {
	fb := &fakeFallback{err: errors.New("quota exceeded")}

	a, err := newService(fb).Text(context.Background(), "Hello there.")
	require.NoError(t, err)

	assert.False(t, a.Fallback)
	assert.Len(t, a.Tokens, 3)
	assert.False(t, annotate.HasRoles(a.Tokens))
}

func TestTextNoFallback(t *testing.T) {
	a, err := newService(nil).Text(context.Background(), "Hello there.")
	require.NoError(t, err)

	assert.False(t, a.Fallback)
	assert.False(t, annotate.HasRoles(a.Tokens))
}

func TestTextNoParse(t *testing.T) {
	_, err := newService(nil).Text(context.Background(), "Unknown.")
	assert.ErrorIs(t, err, parser.ErrNoParse)

	svc := newService(nil)
	svc.Parser = nil
	_, err = svc.Text(context.Background(), "I love you.")
	assert.ErrorIs(t, err, parser.ErrNoParse)
}

func TestSentenceDocumentOffsets(t *testing.T) {
	s := sentence.Sentence{Id: 4, DocId: 2}
	for _, tok := range loveYou.Tokens {
		tok.Idx += 300
		tok.Head += 300
		s.Tokens = append(s.Tokens, tok)
	}

	a, err := newService(nil).Sentence(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 4, a.Id)
	assert.Equal(t, 2, a.DocId)
	assert.Equal(t, "I love you.", a.Text)
	assert.Equal(t, 2, a.Tokens[1].Idx)
}

func TestSentenceEmpty(t *testing.T) {
	_, err := newService(nil).Sentence(context.Background(), sentence.Sentence{})
	assert.ErrorIs(t, err, parser.ErrNoParse)
}

func TestSentenceLeadingSpace(t *testing.T) {
	s := sentence.Sentence{Text: "  I love you."}
	for _, tok := range loveYou.Tokens {
		tok.Idx += 2
		tok.Head += 2
		s.Tokens = append(s.Tokens, tok)
	}

	a, err := newService(nil).Sentence(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "  I love you.", a.Text)
	assert.Equal(t, 4, a.Tokens[1].Idx)
	assert.Equal(t, role.Verb, a.Tokens[1].Role1)
}
