package sentence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMorph(t *testing.T) {
	m := ParseMorph("Mood=Ind|Tense=Past|VerbForm=Fin|Person=3")
	assert.Equal(t, Morph{Mood: "Ind", Tense: "Past", VerbForm: "Fin"}, m)

	assert.Equal(t, Morph{}, ParseMorph(""))
}

func TestMorphUnmarshalBothForms(t *testing.T) {
	var tokens []Token
	data := `[
		{"idx":0,"head":5,"text":"They","morph":{"Case":"Nom","Number":"Plur"}},
		{"idx":5,"head":5,"text":"left","morph":"Tense=Past|VerbForm=Fin"}
	]`

	require.NoError(t, json.Unmarshal([]byte(data), &tokens))
	require.Len(t, tokens, 2)

	assert.Equal(t, Morph{}, tokens[0].Morph)
	assert.Equal(t, "Past", tokens[1].Morph.Tense)
	assert.Equal(t, "Fin", tokens[1].Morph.VerbForm)
}

func TestNormalizeRebasesDocOffsets(t *testing.T) {
	s := Sentence{Tokens: []Token{
		{Idx: 104, Head: 104, Text: "sat", Dep: "ROOT"},
		{Idx: 100, Head: 104, Text: "She", Dep: "nsubj"},
		{Idx: 107, Head: 104, Text: ".", Dep: "punct"},
	}}

	s.Normalize()

	assert.Equal(t, 0, s.Tokens[0].Idx)
	assert.Equal(t, 4, s.Tokens[1].Idx)
	assert.Equal(t, 4, s.Tokens[1].Head)
	assert.Equal(t, 4, s.Tokens[0].Head)
	assert.Equal(t, "root", s.Tokens[1].Dep)
	assert.True(t, s.Tokens[1].IsRoot())
	assert.Equal(t, "She sat.", s.String())
	assert.Equal(t, 8, s.Len())
}

func TestNormalizeKeepsTextOffsets(t *testing.T) {
	s := Sentence{Text: "  She sat.", Tokens: []Token{
		{Idx: 2, Head: 6, Text: "She", Dep: "nsubj"},
		{Idx: 6, Head: 6, Text: "sat", Dep: "ROOT"},
		{Idx: 9, Head: 6, Text: ".", Dep: "punct"},
	}}

	s.Normalize()
	assert.Equal(t, 2, s.Tokens[0].Idx)
	assert.Equal(t, 6, s.Tokens[1].Head)

	// document offsets are rebased to the text
	d := Sentence{Text: "  She sat.", Tokens: []Token{
		{Idx: 102, Head: 106, Text: "She", Dep: "nsubj"},
		{Idx: 106, Head: 106, Text: "sat", Dep: "ROOT"},
	}}

	d.Normalize()
	assert.Equal(t, 2, d.Tokens[0].Idx)
	assert.Equal(t, 6, d.Tokens[1].Idx)
	assert.Equal(t, 6, d.Tokens[0].Head)
}

func TestStringSkipsMultiTokenWords(t *testing.T) {
	s := Sentence{Tokens: []Token{
		{Idx: 0, Text: "Quiero"},
		{Idx: 7, Text: "envolverse"},
		{Idx: 7, Text: "envolverse"},
	}}

	assert.Equal(t, "Quiero envolverse", s.String())
}

func TestIndexChildren(t *testing.T) {
	tokens := []Token{
		{Idx: 0, Head: 4, Text: "She"},
		{Idx: 4, Head: 4, Text: "sat"},
		{Idx: 8, Head: 4, Text: "on"},
		{Idx: 11, Head: 15, Text: "the"},
		{Idx: 15, Head: 8, Text: "chair"},
		{Idx: 20, Head: 4, Text: "."},
	}

	ix := NewIndex(tokens)

	p, ok := ix.Pos(15)
	require.True(t, ok)
	assert.Equal(t, 4, p)

	assert.Equal(t, []int{0, 2, 5}, ix.Children(1))
	assert.Equal(t, []int{3}, ix.Children(4))
	assert.Empty(t, ix.Children(0))
	assert.Nil(t, ix.Children(99))

	_, ok = ix.Pos(3)
	assert.False(t, ok)
}
