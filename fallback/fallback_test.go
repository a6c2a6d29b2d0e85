package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/sentence"
)

type fakeGenerator struct {
	content string
	err     error
	prompt  string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.content, g.err
}

func loveYou() sentence.Sentence {
	return sentence.Sentence{Tokens: []sentence.Token{
		{Idx: 0, Head: 2, Pos: "PRON", Dep: "nsubj", Tag: "PRP", Text: "I", Lemma: "I"},
		{Idx: 2, Head: 2, Pos: "VERB", Dep: "ROOT", Tag: "VBP", Text: "love", Lemma: "love"},
		{Idx: 7, Head: 2, Pos: "PRON", Dep: "dobj", Tag: "PRP", Text: "you", Lemma: "you"},
		{Idx: 10, Head: 2, Pos: "PUNCT", Dep: "punct", Tag: ".", Text: ".", Lemma: "."},
	}}
}

func TestPrompt(t *testing.T) {
	p := Prompt(loveYou())

	assert.Contains(t, p, "Sentence: I love you.")
	assert.Contains(t, p, "● idx(7), text(you), pos(PRON), tag(PRP), dep(dobj), head(love)")
	assert.Contains(t, p, "adjective object complement")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		err     bool
	}{
		{"plain", `[{"idx": 0, "text": "I", "role1": "subject"}]`, 1, false},
		{"fenced", "```json\n[{\"idx\": 0, \"role1\": \"subject\"}, {\"idx\": 2}]\n```", 2, false},
		{"bare fence", "```\n[{\"idx\": 0}]\n```", 1, false},
		{"prose", "The subject is I.", 0, true},
		{"object", `{"idx": 0}`, 0, true},
		{"empty list", `[]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Decode(tt.content)
			if tt.err {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.n)
		})
	}
}

func TestAnnotate(t *testing.T) {
	g := &fakeGenerator{content: `[
		{"idx": 0, "text": "I", "role1": "subject", "level": 0},
		{"idx": 2, "text": "love", "role1": "verb", "level": 0, "combine": [{"idx": 7, "role1": "object"}, {"idx": 0, "role1": "subject"}]},
		{"idx": 7, "text": "you", "role1": "Object", "role2": "sidekick"},
		{"idx": 99, "text": "ghost", "role1": "verb"}
	]`}

	tokens, err := New(g, zerolog.Nop()).Annotate(context.Background(), loveYou())
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, role.Subject, tokens[0].Role1)
	assert.Equal(t, role.Verb, tokens[1].Role1)
	assert.Equal(t, []annotate.Link{{Idx: 7, Role1: role.Object}}, tokens[1].Combine)

	// case folded, unknown roles dropped
	assert.Equal(t, role.Object, tokens[2].Role1)
	assert.Equal(t, role.None, tokens[2].Role2)

	assert.Equal(t, role.None, tokens[3].Role1)
	assert.Equal(t, ".", tokens[3].Text)

	assert.Contains(t, g.prompt, "text(love)")
}

func TestAnnotateOffsetLinks(t *testing.T) {
	g := &fakeGenerator{content: `[
		{"idx": 2, "role1": "verb", "combine": [7]},
		{"idx": 7, "role1": "object", "level": 1.5}
	]`}

	tokens, err := New(g, zerolog.Nop()).Annotate(context.Background(), loveYou())
	require.NoError(t, err)

	assert.Equal(t, []annotate.Link{{Idx: 7, Role1: role.Object}}, tokens[1].Combine)
	assert.Equal(t, annotate.Level(3), tokens[2].Level)
}

func TestAnnotateMalformed(t *testing.T) {
	g := &fakeGenerator{content: "Sorry, I can not help with that."}

	tokens, err := New(g, zerolog.Nop()).Annotate(context.Background(), loveYou())
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestAnnotateGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := &fakeGenerator{err: boom}

	_, err := New(g, zerolog.Nop()).Annotate(context.Background(), loveYou())
	assert.ErrorIs(t, err, boom)
}

func TestNewGenAIGeneratorNoKey(t *testing.T) {
	_, err := NewGenAIGenerator(context.Background(), "", "")
	assert.Error(t, err)
}
