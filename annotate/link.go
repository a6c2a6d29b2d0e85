package annotate

import (
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

// link sets the Combine links of every token. Links always point to the
// right: the target is after the source in the sentence.
func (c *Context) link() {
	for p := range c.tokens {
		c.tokens[p].Combine = c.links(p)
	}
}

func (c *Context) links(p int) []Link {
	t := c.tokens[p]
	if t.Role1 == role.None {
		return nil
	}

	var links []Link
	add := func(q int) {
		u := c.tokens[q]
		if u.Idx <= t.Idx {
			return
		}
		for _, l := range links {
			if l.Idx == u.Idx {
				return
			}
		}
		links = append(links, Link{Idx: u.Idx, Role1: u.Role1})
	}

	// same level: the target is drawn on the row of the source links
	sameLevel := func(q int) bool {
		return c.tokens[q].Level.Depth() == t.Level.Row()
	}

	if t.Role1 == role.Verb {
		for q := p + 1; q < len(c.tokens); q++ {
			u := c.tokens[q]
			if !c.headIs(q, p) && !c.head2Is(q, p) {
				continue
			}
			if !sameLevel(q) {
				continue
			}
			if !u.Role1.In(role.Object, role.IndirectObject, role.DirectObject) && !u.Role1.IsSubjectComplement() {
				continue
			}

			add(q)

			if u.Role1 == role.IndirectObject {
				for _, r := range c.children(q) {
					if c.tokens[r].Role1.In(role.DirectObject, role.Object) {
						add(r)
					}
				}
			}
			break
		}
	}

	if t.Role1.In(role.IndirectObject, role.Object) {
		h, ok := c.head(p)
		for q := p + 1; ok && q < len(c.tokens); q++ {
			if c.tokens[q].Role1 != role.DirectObject || !sameLevel(q) {
				continue
			}
			if c.headIs(q, h) || c.head2Is(q, h) {
				add(q)
			}
		}
	}

	if t.Role1 == role.Object {
		for q := p + 1; q < len(c.tokens); q++ {
			if !c.tokens[q].Role1.IsObjectComplement() || !sameLevel(q) {
				continue
			}

			// the complement governs the object (small clause) or both
			// depend on the verb
			if c.headIs(p, q) || c.sameHead(p, q) {
				add(q)
			}
		}
	}

	if t.Role1 == role.Preposition {
		for _, q := range c.children(p) {
			if c.tokens[q].Role1 == role.PrepositionalObject && sameLevel(q) {
				add(q)
			}
		}
	}

	// due to, according to: the object depends on the word the parser took
	// for a preposition, the link starts at the following "to".
	for q := p + 1; q < len(c.tokens); q++ {
		if c.tokens[q].Role1 != role.PrepositionalObject {
			continue
		}

		h, ok := c.head(q)
		if !ok || !c.lx.Is(lexicon.NotPreposition, c.tokens[h].Text) {
			continue
		}

		if to, ok := c.nextTo(h); ok && to == p {
			add(q)
		}
	}

	return links
}

// nextTo returns the position of the first "to" after p.
func (c *Context) nextTo(p int) (int, bool) {
	for q := p + 1; q < len(c.tokens); q++ {
		if lower(c.tokens[q].Text) == "to" {
			return q, true
		}
	}
	return 0, false
}
