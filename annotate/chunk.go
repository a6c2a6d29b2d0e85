package annotate

import (
	"sort"
	"strings"

	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

// Form is the verbal form of a clause connector.
type Form string

const (
	FormNone              Form = ""
	FormSubordinate       Form = "subordinate clause"
	FormToInfinitive      Form = "to infinitive"
	FormBareInfinitive    Form = "bare infinitive"
	FormGerund            Form = "gerund"
	FormPresentParticiple Form = "present participle"
	FormPastParticiple    Form = "past participle"
	FormReduced           Form = "reduced clause"
)

// Kind is the part of speech a chunk plays in its enclosing clause.
type Kind string

const (
	KindNone                   Kind = ""
	KindNounClause             Kind = "noun clause"
	KindAdverbClause           Kind = "adverb clause"
	KindToInfinitiveNoun       Kind = "to-infinitive noun"
	KindToInfinitiveComplement Kind = "to-infinitive complement"
	KindToInfinitiveAdjective  Kind = "to-infinitive adjective"
	KindToInfinitiveAdverb     Kind = "to-infinitive adverb"
	KindGerundNoun             Kind = "gerund noun"
)

func (k Kind) IsToInfinitive() bool {
	switch k {
	case KindToInfinitiveNoun, KindToInfinitiveComplement, KindToInfinitiveAdjective, KindToInfinitiveAdverb:
		return true
	}
	return false
}

var subordinateDeps = map[string]bool{
	depCcomp: true,
	depXcomp: true,
	depAdvcl: true,
	depCsubj: true,
}

// nominal positions of a clause introduced by that/if/whether
var nounClauseDeps = map[string]bool{
	depNsubj: true,
	depCsubj: true,
	depObj:   true,
	depDobj:  true,
	depCcomp: true,
	depXcomp: true,
}

var gerundNounDeps = map[string]bool{
	depNsubj: true,
	depCsubj: true,
	depObj:   true,
	depDobj:  true,
	depPobj:  true,
	depAttr:  true,
}

var participleDeps = map[string]bool{
	"amod":   true,
	depAcl:   true,
	depAdvcl: true,
	depXcomp: true,
	depCcomp: true,
	depConj:  true,
}

// subordinateVerb returns the verb of the subordinate clause started at p.
// The connector is either the verb itself or its subordinator.
func (c *Context) subordinateVerb(p int) (int, bool) {
	v := p
	if t := c.tokens[p]; t.Dep == depMark && t.Pos == posSconj {
		h, ok := c.head(p)
		if !ok {
			return 0, false
		}
		v = h
	}

	vt := c.tokens[v]
	if (vt.Pos != posVerb && vt.Pos != posAux) || !subordinateDeps[vt.Dep] {
		return 0, false
	}

	_, ok := c.childWith(v, func(q int) bool {
		ct := c.tokens[q]
		return (ct.Dep == depMark || ct.Dep == depAdvmod) && ct.Pos == posSconj && c.lx.Is(lexicon.Subordinator, ct.Text)
	})

	return v, ok
}

// form returns the verbal form of the connector at p.
func (c *Context) form(p int) Form {
	t := c.tokens[p]

	if _, ok := c.subordinateVerb(p); ok {
		return FormSubordinate
	}

	if t.Pos == posPart && t.Tag == "TO" && t.Dep == depAux && lower(t.Lemma) == "to" {
		for q := p + 1; q < len(c.tokens); q++ {
			if c.tokens[q].Pos == posVerb && c.tokens[q].Tag == "VB" {
				return FormToInfinitive
			}
		}
	}

	if t.Pos == posVerb && t.Tag == "VB" {
		if p == 0 || c.tokens[p-1].Tag != "TO" {
			return FormBareInfinitive
		}
	}

	if t.Morph.VerbForm == "Ger" || (t.Tag == "VBG" && strings.HasSuffix(lower(t.Text), "ing")) {
		return FormGerund
	}

	if t.Tag == "VBG" && t.Pos == posVerb && participleDeps[t.Dep] {
		return FormPresentParticiple
	}

	if t.Tag == "VBN" && t.Pos == posVerb && (t.Morph.VerbForm == "" || t.Morph.VerbForm == "Part") {
		return FormPastParticiple
	}

	if t.Pos == posVerb && (t.Dep == depAdvcl || t.Dep == "amod") && (t.Tag == "VBG" || t.Tag == "VBN") {
		return FormReduced
	}

	return FormNone
}

// kind returns the chunk kind of the connector at p with form f.
func (c *Context) kind(p int, f Form) Kind {
	switch f {
	case FormSubordinate:
		v, _ := c.subordinateVerb(p)

		if nounClauseDeps[c.tokens[v].Dep] && c.hasSubordinator(v, lexicon.NounSubordinator, "IN") {
			return KindNounClause
		}

		if c.hasSubordinator(v, lexicon.AdverbSubordinator, "IN", "WRB") {
			return KindAdverbClause
		}

	case FormToInfinitive:
		switch c.headDep(p) {
		case depCsubj:
			return KindToInfinitiveNoun
		case depXcomp, depCcomp:
			return KindToInfinitiveComplement
		case depRelcl:
			return KindToInfinitiveAdjective
		case depAdvcl:
			return KindToInfinitiveAdverb
		}

	case FormGerund:
		if gerundNounDeps[c.tokens[p].Dep] {
			return KindGerundNoun
		}
	}

	return KindNone
}

func (c *Context) hasSubordinator(v int, cat lexicon.Category, tags ...string) bool {
	_, ok := c.childWith(v, func(q int) bool {
		t := c.tokens[q]
		if t.Pos != posSconj || (t.Dep != depMark && t.Dep != depAdvmod) {
			return false
		}

		for _, tag := range tags {
			if t.Tag == tag {
				return c.lx.Is(cat, t.Text)
			}
		}
		return false
	})
	return ok
}

// classifyChunks sets the phrase marker (role2), the chunk function (role3)
// and the chunk span of every connector. A noun chunk complementing a verb
// also gets its role1 from the governing verb.
func (c *Context) classifyChunks() {
	for p := range c.tokens {
		if !c.tokens[p].Level.IsConnector() {
			continue
		}

		h, ok := c.head(p)
		if !ok {
			continue
		}

		f := c.form(p)
		k := c.kind(p, f)

		t := &c.tokens[p]
		switch f {
		case FormToInfinitive:
			t.Role2 = role.ToInfinitive
		case FormGerund:
			t.Role2 = role.Gerund
		default:
			t.Role2 = c.initial[p]
		}

		dep, headDep := t.Dep, c.tokens[h].Dep
		isComplement := dep == depCcomp || dep == depXcomp || headDep == depCcomp || headDep == depXcomp

		switch {
		case (k == KindAdverbClause && dep == depAdvcl) || headDep == depAdvcl:
			t.Role3 = role.ChunkAdverbModifier

		case (k != KindNone && subjectDeps[dep]) || subjectDeps[headDep]:
			t.Role3 = role.ChunkSubject

		case isComplement && k != KindNone:
			c.assignChunkFunction(p, h, k)
		}

		t.Chunk = &Chunk{
			Kind:  k,
			Start: t.Idx,
			End:   c.tokens[c.chunkEnd(p, h)].Idx,
		}

		c.log.Debug().
			Str("connector", t.Text).
			Str("form", string(f)).
			Str("kind", string(k)).
			Str("role1", string(t.Role1)).
			Str("role3", string(t.Role3)).
			Msg("chunk")
	}
}

// assignChunkFunction sets role1 of a noun chunk from its governing verb:
// the head of the connector, or the head of the head for infinitives and
// noun clauses.
func (c *Context) assignChunkFunction(p, h int, k Kind) {
	t := &c.tokens[p]

	// the object complement of a control verb is already decided
	if t.Role1.IsObjectComplement() {
		return
	}

	g := h
	if k.IsToInfinitive() || k == KindNounClause {
		g2, ok := c.head(h)
		if !ok {
			return
		}
		g = g2
	}

	lemma := c.tokens[g].Lemma

	switch {
	case c.isCopula(g, p) && !c.hasSubjectComplement(g, p):
		t.Role1 = role.NounSubjectComplement

	case c.lx.Is(lexicon.Dative, lemma):
		if c.depthHasObject(t.Level.Depth(), p) {
			t.Role1 = role.DirectObject
		} else {
			t.Role1 = role.Object
		}

	default:
		t.Role3 = role.ChunkNotDecided
		t.Role1 = role.Object
	}
}

// isCopula reports whether g links its subject to the chunk at p: be, the
// linking verbs, and the transitive linking verbs (get, turn...) when they
// have no object.
func (c *Context) isCopula(g, p int) bool {
	lemma := c.tokens[g].Lemma
	if c.lx.Is(lexicon.Be, lemma) || c.lx.Is(lexicon.Linking, lemma) {
		return true
	}

	if !c.lx.Is(lexicon.LinkingTransitive, lemma) {
		return false
	}

	_, hasObject := c.childWith(g, func(q int) bool {
		return q != p && c.tokens[q].Role1.In(role.Object, role.DirectObject, role.IndirectObject)
	})
	return !hasObject
}

// hasSubjectComplement reports whether a dependent of g other than p is a
// subject complement.
func (c *Context) hasSubjectComplement(g, p int) bool {
	_, ok := c.childWith(g, func(q int) bool {
		return q != p && c.tokens[q].Role1.IsSubjectComplement()
	})
	return ok
}

// depthHasObject reports whether a token other than p at depth d is an
// object or an indirect object.
func (c *Context) depthHasObject(d, p int) bool {
	for q, t := range c.tokens {
		if q == p || t.Level.Depth() != d {
			continue
		}
		if t.Role1.In(role.Object, role.IndirectObject) {
			return true
		}
	}
	return false
}

// chunkEnd returns the position of the last token of the chunk started at p:
// the right-most token under the clause head, without the final sentence
// punctuation. The clause head is p when p heads its own clause, else its
// head h.
func (c *Context) chunkEnd(p, h int) int {
	root := h
	if levelTriggers[c.tokens[p].Dep] {
		root = p
	}

	span := append([]int{root}, c.children(root)...)
	sort.Ints(span)

	end := span[len(span)-1]
	if len(span) >= 2 && isSentencePunct(c.tokens[end].Pos, c.tokens[end].Text) {
		end = span[len(span)-2]
	}

	return end
}

func isSentencePunct(pos, text string) bool {
	if pos != posPunct {
		return false
	}
	return text == "." || text == "!" || text == "?"
}
