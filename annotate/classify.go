package annotate

import (
	"strings"

	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

// classify sets role1 of every token, in sentence order. Coordinated verbs
// read the role of their head, that is already set when the head comes
// first.
func (c *Context) classify() {
	for p := range c.tokens {
		r := c.guessRole(p)
		c.tokens[p].Role1 = r
		c.initial[p] = r
	}
}

func (c *Context) guessRole(p int) role.Role {
	t := c.tokens[p].Token
	h, hasHead := c.head(p)

	switch {
	case t.Dep == depNsubj || t.Dep == depNsubjP:
		return role.Subject

	case (t.Pos == posVerb || t.Pos == posAux) && (levelTriggers[t.Dep] || t.Dep == depRoot):
		return role.Verb

	case t.Pos == posVerb && t.Dep == depConj && hasHead && c.tokens[h].Role1 == role.Verb:
		return role.Verb

	case t.Dep == depIobj || t.Dep == depDative:
		return role.IndirectObject

	case t.Dep == depDobj || t.Dep == depObj:
		if hasHead && c.lx.Is(lexicon.NoObject, c.tokens[h].Lemma) {
			return role.None
		}

		if hasHead {
			for _, s := range c.children(h) {
				if s == p {
					continue
				}
				if d := c.tokens[s].Dep; d == depIobj || d == depDative {
					return role.DirectObject
				}
			}
		}

		return role.Object
	}

	isPrep := t.Dep == depPrep || t.Dep == depAgent || (t.Dep == depPcomp && t.Pos == posAdp && t.Tag == "IN")
	if isPrep && !c.lx.Is(lexicon.NotPreposition, t.Text) {
		return role.Preposition
	}

	if t.Dep == depPobj && hasHead && c.isPrepositionLike(h) {
		return role.PrepositionalObject
	}

	if t.Dep == depCc || t.Dep == depMark {
		return role.Conjunction
	}

	if t.Dep == depAttr || t.Dep == depAcomp {
		if hasHead && c.lx.Is(lexicon.NoSubjectComplement, c.tokens[h].Lemma) {
			return role.None
		}

		switch {
		case isNominal(t.Pos):
			return role.NounSubjectComplement
		case t.Pos == posAdj:
			return role.AdjectiveSubjectComplement
		}
	}

	if t.Dep == depOprd || t.Dep == depXcomp || t.Dep == depCcomp {
		switch {
		case isNominal(t.Pos):
			return role.NounObjectComplement
		case t.Pos == posAdj:
			return role.AdjectiveObjectComplement
		}
	}

	// adjective the parser attached as a loose modifier of a verb with object
	if t.Dep == depAdvmod && t.Pos == posAdj && hasHead && c.tokens[h].Pos == posVerb && c.hasChild(h, depDobj, depObj) {
		return role.AdjectiveObjectComplement
	}

	return role.None
}

// isPrepositionLike reports whether the token at h governs a prepositional
// object: either it is a preposition, or one of the words the parser tags as
// preposition but the lexicon rejects (due to, according to).
func (c *Context) isPrepositionLike(h int) bool {
	ht := c.tokens[h]
	if ht.Role1 == role.Preposition {
		return true
	}

	if !c.lx.Is(lexicon.NotPreposition, ht.Text) {
		return false
	}

	return ht.Pos == posAdp || ht.Dep == depPrep || ht.Tag == "IN"
}

// hasChild reports whether the token at p has a dependent with one of deps.
func (c *Context) hasChild(p int, deps ...string) bool {
	_, ok := c.childWith(p, func(q int) bool {
		for _, d := range deps {
			if c.tokens[q].Dep == d {
				return true
			}
		}
		return false
	})
	return ok
}

// childWith returns the first dependent of p satisfying f.
func (c *Context) childWith(p int, f func(q int) bool) (int, bool) {
	for _, q := range c.children(p) {
		if f(q) {
			return q, true
		}
	}
	return 0, false
}

func lower(s string) string {
	return strings.ToLower(s)
}
