// Package fallback asks a language model for the annotations of a sentence
// the rules could not annotate.
package fallback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/sentence"
)

// ErrMalformed is returned by Decode when the response is not a JSON array
// of annotated tokens.
var ErrMalformed = errors.New("malformed language model response")

// Generator returns the completion of a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fallback annotates sentences with a Generator.
type Fallback struct {
	Generator Generator
	Logger    zerolog.Logger
}

func New(g Generator, logger zerolog.Logger) *Fallback {
	return &Fallback{Generator: g, Logger: logger}
}

// Annotate returns the tokens of s annotated by the language model. A
// response that can not be decoded is logged and gives no tokens, only
// the errors of the Generator are returned.
func (f *Fallback) Annotate(ctx context.Context, s sentence.Sentence) ([]annotate.Token, error) {
	s.Tokens = append([]sentence.Token(nil), s.Tokens...)
	s.Normalize()

	content, err := f.Generator.Generate(ctx, Prompt(s))
	if err != nil {
		return nil, fmt.Errorf("fallback generation: %w", err)
	}

	items, err := Decode(content)
	if err != nil {
		f.Logger.Warn().Err(err).Str("content", content).Msg("fallback response discarded")
		return nil, nil
	}

	tokens := merge(s.Tokens, items)
	f.Logger.Debug().Int("items", len(items)).Int("tokens", len(tokens)).Msg("fallback annotated")
	return tokens, nil
}

// Prompt lists the tokens of s, one per line, and asks for their roles.
func Prompt(s sentence.Sentence) string {
	heads := make(map[int]string, len(s.Tokens))
	for _, t := range s.Tokens {
		heads[t.Idx] = t.Text
	}

	var lines strings.Builder
	for _, t := range s.Tokens {
		fmt.Fprintf(&lines, "● idx(%d), text(%s), pos(%s), tag(%s), dep(%s), head(%s)\n",
			t.Idx, t.Text, t.Pos, t.Tag, t.Dep, heads[t.Head])
	}

	roles := make([]string, 0, 12)
	for _, r := range []role.Role{
		role.Subject, role.Verb, role.Object, role.IndirectObject, role.DirectObject,
		role.Preposition, role.PrepositionalObject, role.Conjunction,
		role.NounSubjectComplement, role.AdjectiveSubjectComplement,
		role.NounObjectComplement, role.AdjectiveObjectComplement,
	} {
		roles = append(roles, string(r))
	}

	return fmt.Sprintf(`Given the following tokenized and POS-tagged English sentence, analyze its syntactic structure.

Sentence: %s

Token Info:
%s
Return a JSON list with each token's role in the sentence.
Each item must have: idx, text, role1, role2, role3, and optionally combine and level.
role1 is one of: %s.
combine is a list of {"idx": target idx, "role1": target role1} for tokens on the right.
level is the clause nesting level, a multiple of 0.5.

If unsure, return best-guess. Do not return explanations, just the JSON.`,
		s.String(), lines.String(), strings.Join(roles, ", "))
}

// Item is an annotated token as returned by the language model.
type Item struct {
	Idx     int             `json:"idx"`
	Text    string          `json:"text"`
	Role1   string          `json:"role1"`
	Role2   string          `json:"role2"`
	Role3   string          `json:"role3"`
	Level   annotate.Level  `json:"level"`
	Combine json.RawMessage `json:"combine"`
}

// Decode parses the response of the language model. Code fences around the
// JSON are removed.
func Decode(content string) ([]Item, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimPrefix(content, "json")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	var items []Item
	dec := json.NewDecoder(strings.NewReader(content))
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrMalformed)
	}

	return items, nil
}

// links decodes combine, given as a list of links or of bare offsets.
func (it Item) links() []annotate.Link {
	raw := bytes.TrimSpace(it.Combine)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var loose []struct {
		Idx   int    `json:"idx"`
		Role1 string `json:"role1"`
	}
	if err := json.Unmarshal(raw, &loose); err == nil {
		links := make([]annotate.Link, 0, len(loose))
		for _, l := range loose {
			links = append(links, annotate.Link{Idx: l.Idx, Role1: known(l.Role1)})
		}
		return links
	}

	var offsets []int
	if err := json.Unmarshal(raw, &offsets); err == nil {
		links := make([]annotate.Link, 0, len(offsets))
		for _, o := range offsets {
			links = append(links, annotate.Link{Idx: o})
		}
		return links
	}

	return nil
}

// known returns s as a Role, or None if it is not a known one.
func known(s string) role.Role {
	r := role.Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return role.None
	}
	return r
}

// merge copies the annotations of items onto the tokens with the same
// offset. Items for unknown offsets are ignored, as are links to the left
// or to unknown offsets.
func merge(tokens []sentence.Token, items []Item) []annotate.Token {
	out := make([]annotate.Token, len(tokens))
	pos := make(map[int]int, len(tokens))
	for i, t := range tokens {
		out[i] = annotate.Token{Token: t}
		if _, ok := pos[t.Idx]; !ok {
			pos[t.Idx] = i
		}
	}

	for _, it := range items {
		p, ok := pos[it.Idx]
		if !ok {
			continue
		}

		t := &out[p]
		t.Role1 = known(it.Role1)
		t.Role2 = known(it.Role2)
		t.Role3 = known(it.Role3)
		t.Level = it.Level

		t.Combine = nil
		for _, l := range it.links() {
			if l.Idx <= t.Idx {
				continue
			}
			if _, ok := pos[l.Idx]; !ok {
				continue
			}
			if l.Role1 == role.None {
				l.Role1 = known(itemRole(items, l.Idx))
			}
			t.Combine = append(t.Combine, l)
		}
	}

	return out
}

func itemRole(items []Item, idx int) string {
	for _, it := range items {
		if it.Idx == idx {
			return it.Role1
		}
	}
	return ""
}
