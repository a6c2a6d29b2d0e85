package sentence

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered list of tokens of one sentence of a Doc.
type Sentence struct {
	Id    int `json:"id"`
	DocId int `json:"doc_id"`

	// The original text of the sentence. May be empty for corpus sentences,
	// then it is rebuilt from the tokens offsets.
	Text string `json:"text,omitempty"`

	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS, dependency and morphology.
type Token struct {
	// the index of the start character of the token (set by spacy, stanza).
	// Unique inside the sentence, used as sort key and as token reference.
	Idx int `json:"idx"`

	// Idx of the head token. The root token points to itself.
	Head int `json:"head"`

	Pos string `json:"pos"`
	Dep string `json:"dep"`

	// The fine grained POS tag (VBD, MD, TO...)
	Tag string `json:"tag"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	Morph Morph `json:"morph"`
}

// IsRoot reports whether the token is the root of the dependency tree.
func (t Token) IsRoot() bool {
	return t.Head == t.Idx || t.Dep == "root"
}

// Morph holds the morphological features used by the diagram.
type Morph struct {
	Tense    string `json:"Tense,omitempty"`
	Aspect   string `json:"Aspect,omitempty"`
	Voice    string `json:"Voice,omitempty"`
	VerbForm string `json:"VerbForm,omitempty"`
	Mood     string `json:"Mood,omitempty"`
}

// ParseMorph parses the universal dependencies feature string, f.ex:
//
//	Mood=Ind|Tense=Past|VerbForm=Fin
//
// Unknown features are ignored.
func ParseMorph(s string) Morph {
	var m Morph
	for _, feat := range strings.Split(s, "|") {
		k, v, ok := strings.Cut(feat, "=")
		if !ok {
			continue
		}

		switch k {
		case "Tense":
			m.Tense = v
		case "Aspect":
			m.Aspect = v
		case "Voice":
			m.Voice = v
		case "VerbForm":
			m.VerbForm = v
		case "Mood":
			m.Mood = v
		}
	}

	return m
}

// UnmarshalJSON accepts both the object form ({"Tense":"Past"}) and the
// string form ("Tense=Past|VerbForm=Fin") of the features.
func (m *Morph) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = ParseMorph(s)
		return nil
	}

	type plain Morph
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*m = Morph(p)
	return nil
}

// Normalize prepares the sentence tokens for annotation: tokens are sorted by
// Idx, the dependency labels lowercased (spacy uses ROOT) and, if the offsets
// are document based, rebased so that they are relative to the sentence Text.
// Without Text the first token starts at 0.
func (s *Sentence) Normalize() {
	if len(s.Tokens) == 0 {
		return
	}

	sort.SliceStable(s.Tokens, func(i, j int) bool {
		return s.Tokens[i].Idx < s.Tokens[j].Idx
	})

	base := max(s.Tokens[0].Idx-s.lead(), 0)
	for i := range s.Tokens {
		s.Tokens[i].Dep = strings.ToLower(s.Tokens[i].Dep)
		s.Tokens[i].Idx -= base
		s.Tokens[i].Head -= base
	}
}

// lead returns the offset of the first token inside Text.
func (s *Sentence) lead() int {
	i := strings.Index(s.Text, s.Tokens[0].Text)
	if s.Text == "" || i < 0 {
		return 0
	}
	return utf8.RuneCountInString(s.Text[:i])
}

// Len returns the length in characters of the sentence text.
func (s Sentence) Len() int {
	return len([]rune(s.String()))
}

// String returns the sentence text. If the Text field is empty, it is built
// from the token offsets.
func (s Sentence) String() string {
	if s.Text != "" {
		return s.Text
	}

	var str strings.Builder
	var pos int
	for _, token := range s.Tokens {
		// multi token words share the same idx, we avoid rendering the text twice.
		if token.Idx < pos {
			continue
		}

		str.WriteString(strings.Repeat(" ", token.Idx-pos))
		str.WriteString(token.Text)
		pos = token.Idx + len([]rune(token.Text))
	}

	return str.String()
}
