package annotate

import (
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

// repair fixes role1 of constructions the parser systematically gets wrong.
// The passes run in order, each one sees the result of the previous.
func (c *Context) repair() {
	c.repairNamingComplement()
	c.repairCompoundAdjective()
	c.repairAdverbialAdjective()
	c.repairObjectFromComplement()
	c.repairDirectObject()
	c.repairControlInfinitive()
}

// repairNamingComplement handles naming verbs (elect, appoint...): the noun
// after the object is its complement, whatever the parser attached it as.
//
//	They elected him president.
func (c *Context) repairNamingComplement() {
	candidateDeps := map[string]bool{
		depNsubj: true, "nmod": true, depAttr: true, depAppos: true, "npadvmod": true, depCcomp: true,
	}

	for v := range c.tokens {
		verb := c.tokens[v]
		if verb.Pos != posVerb && verb.Pos != posAux {
			continue
		}
		if !c.lx.Is(lexicon.Naming, verb.Lemma) {
			continue
		}

		obj, ok := c.childWith(v, func(q int) bool {
			d := c.tokens[q].Dep
			return d == depDobj || d == depObj
		})
		if !ok {
			continue
		}

		comp, ok := c.childWith(v, func(q int) bool {
			t := c.tokens[q]
			return t.Idx > c.tokens[obj].Idx && candidateDeps[t.Dep] && (t.Pos == posNoun || t.Pos == posPropn)
		})
		if !ok {
			continue
		}

		c.setRole(comp, role.NounObjectComplement, "naming verb complement")
	}
}

// repairCompoundAdjective handles an adjective parsed as the object, with the
// real object attached to it as compound:
//
//	She painted the wall green.
func (c *Context) repairCompoundAdjective() {
	for v := range c.tokens {
		verb := c.tokens[v]
		if verb.Pos != posVerb {
			continue
		}
		if !c.lx.Is(lexicon.AdjectiveComplement, verb.Lemma) && !c.lx.Is(lexicon.EitherComplement, verb.Lemma) {
			continue
		}

		for _, q := range c.children(v) {
			t := c.tokens[q]
			if (t.Dep != depDobj && t.Dep != depObj) || t.Pos != posAdj {
				continue
			}

			_, hasCompound := c.childWith(q, func(r int) bool {
				return c.tokens[r].Dep == "compound" && c.tokens[r].Pos == posNoun
			})
			if hasCompound {
				c.setRole(q, role.AdjectiveObjectComplement, "adjective with compound object")
			}
		}
	}
}

// repairAdverbialAdjective handles an adjective complement the parser
// attached as adverbial clause after the object:
//
//	He painted the walls blue.
func (c *Context) repairAdverbialAdjective() {
	for v := range c.tokens {
		verb := c.tokens[v]
		if verb.Pos != posVerb || !c.lx.Is(lexicon.EitherComplement, verb.Lemma) {
			continue
		}

		obj, ok := c.childWith(v, func(q int) bool {
			return c.tokens[q].Role1.In(role.Object, role.DirectObject)
		})
		if !ok {
			continue
		}

		for _, q := range c.children(v) {
			t := c.tokens[q]
			if t.Idx > c.tokens[obj].Idx && t.Dep == depAdvcl && t.Pos == posAdj {
				c.setRole(q, role.AdjectiveObjectComplement, "adjective parsed as adverbial clause")
			}
		}
	}
}

// repairObjectFromComplement: the parser reads object + complement as a small
// clause, with the object as subject of the complement. The first subject
// dependent of a complement is its object, or else its first compound noun.
func (c *Context) repairObjectFromComplement() {
	for p := range c.tokens {
		if !c.tokens[p].Role1.IsObjectComplement() {
			continue
		}

		if q, ok := c.childWith(p, func(q int) bool { return c.tokens[q].Dep == depNsubj }); ok {
			c.setRole(q, role.Object, "subject of object complement")
			continue
		}

		q, ok := c.childWith(p, func(q int) bool {
			return c.tokens[q].Dep == "compound" && c.tokens[q].Pos == posNoun
		})
		if ok {
			c.setRole(q, role.Object, "compound of object complement")
		}
	}
}

// repairDirectObject: an indirect object with an appositive noun without role
// has the direct object as appositive.
//
//	She gave him a book.
func (c *Context) repairDirectObject() {
	for p := range c.tokens {
		if c.tokens[p].Role1 != role.IndirectObject {
			continue
		}

		q, ok := c.childWith(p, func(q int) bool {
			t := c.tokens[q]
			return t.Dep == depAppos && (t.Pos == posNoun || t.Pos == posPropn)
		})
		if ok && c.tokens[q].Role1 == role.None {
			c.setRole(q, role.DirectObject, "appositive of indirect object")
		}
	}
}

// repairControlInfinitive handles a complement clause with a subject and an
// infinitive marker. The subject is the object of the main verb and the
// infinitive its complement:
//
//	I want you to succeed.
func (c *Context) repairControlInfinitive() {
	for p := range c.tokens {
		if c.tokens[p].Dep != depCcomp {
			continue
		}

		subj, ok := c.childWith(p, func(q int) bool { return c.tokens[q].Dep == depNsubj })
		if !ok {
			continue
		}

		to, ok := c.childWith(p, func(q int) bool { return c.tokens[q].Tag == "TO" })
		if !ok {
			continue
		}

		c.setRole(subj, role.Object, "controllee of infinitive")
		c.setRole(to, role.NounObjectComplement, "infinitive marker")
	}
}

func (c *Context) setRole(p int, r role.Role, reason string) {
	t := &c.tokens[p]
	if t.Role1 == r {
		return
	}

	c.log.Debug().
		Str("token", t.Text).
		Int("idx", t.Idx).
		Str("from", string(t.Role1)).
		Str("to", string(r)).
		Msg("repair: " + reason)

	t.Role1 = r
}
