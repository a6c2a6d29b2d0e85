package annotate

import "sort"

// clauseUnit is the set of tokens of one clause: the trigger and its direct
// dependents, minus the tokens it shared with a clause starting later.
type clauseUnit struct {
	trigger int

	// positions, ascending
	members []int
}

func (u clauseUnit) first() int { return u.members[0] }
func (u clauseUnit) last() int  { return u.members[len(u.members)-1] }

func (u clauseUnit) has(p int) bool {
	i := sort.SearchInts(u.members, p)
	return i < len(u.members) && u.members[i] == p
}

// isClauseTrigger reports whether the token at p starts a new clause level.
// Object complements and adjectives parsed as adverbial clauses do not.
func (c *Context) isClauseTrigger(p int) bool {
	t := c.tokens[p]
	if !levelTriggers[t.Dep] {
		return false
	}

	if t.Role1.IsObjectComplement() {
		return false
	}

	if t.Dep == depAdvcl && t.Pos == posAdj {
		return false
	}

	return true
}

// levelTriggers are the dependency labels that open a clause level.
var levelTriggers = map[string]bool{
	depRelcl:    true,
	depAcl:      true,
	depAdvcl:    true,
	"advmodcl":  true,
	depCcomp:    true,
	depXcomp:    true,
	depCsubj:    true,
	"parataxis": true,
}

// assignLevels sets the level of every token.
//
// Triggers are visited left to right. Each one claims itself and its direct
// dependents; on overlap with a recorded clause, the clause starting earlier
// gives up the shared tokens, they stay with the clause nested in it. All
// the tokens in the span of the clause not yet leveled get the current
// level, which grows by one per clause and restarts at 1 after the root.
// The first token of the clause, the connector, is lowered by half a level.
//
// A final pass fixes adjacent clauses where the later one contains the
// earlier: the contained clause goes one level down and the tokens only in
// the container one level up. Tokens in no clause are at level 0.
func (c *Context) assignLevels() {
	n := len(c.tokens)
	levels := make([]Level, n)
	set := make([]bool, n)

	setLevel := func(p int, l Level) {
		levels[p] = l
		set[p] = true
	}

	current := 1
	afterRoot := false

	for p := range c.tokens {
		t := c.tokens[p]

		if t.Dep == depRoot {
			afterRoot = true
			continue
		}

		if afterRoot {
			current = 1
			afterRoot = false
		}

		if !c.isClauseTrigger(p) {
			continue
		}

		children := c.children(p)
		members := append([]int{p}, children...)
		sort.Ints(members)

		for i := range c.units {
			prev := &c.units[i]
			overlap := intersect(members, prev.members)
			if len(overlap) == 0 {
				continue
			}

			if members[0] < prev.first() {
				members = subtract(members, overlap)
			} else {
				prev.members = subtract(prev.members, overlap)
			}

			c.log.Debug().
				Str("trigger", t.Text).
				Str("other", c.tokens[prev.trigger].Text).
				Int("shared", len(overlap)).
				Msg("clause overlap")

			if len(members) == 0 {
				break
			}
		}

		if len(members) == 0 {
			continue
		}

		unit := clauseUnit{trigger: p, members: members}
		c.units = append(c.units, unit)

		for q := unit.first(); q <= unit.last(); q++ {
			if !set[q] {
				setLevel(q, LevelOf(current))
			}
		}

		first := unit.first()
		switch {
		case c.tokens[first].Dep == depNsubj:
			// I want you to succeed: the infinitive marker is the
			// connector, the subject stays in the parent clause.
			to, ok := firstWithTag(c, children, "TO")
			if ok && c.headDep(to) == depCcomp {
				setLevel(to, LevelOf(current)-half)
				setLevel(first, LevelOf(current-1))
			} else {
				setLevel(first, LevelOf(current)-half)
			}

		case t.Dep == depAcl:
			setLevel(p, LevelOf(current)-half)

		default:
			setLevel(first, LevelOf(current)-half)
		}

		current++
	}

	for i := 0; i+1 < len(c.units); i++ {
		u1, u2 := c.units[i], c.units[i+1]
		if len(u1.members) == 0 || len(u2.members) == 0 {
			continue
		}

		if !(u2.first() < u1.first() && u2.last() > u1.last()) {
			continue
		}

		c.log.Debug().
			Str("contained", c.tokens[u1.trigger].Text).
			Str("container", c.tokens[u2.trigger].Text).
			Msg("clause containment")

		for _, q := range u1.members {
			if set[q] {
				levels[q] += LevelOf(1)
			}
		}

		for _, q := range u2.members {
			if u1.has(q) || !set[q] {
				continue
			}

			levels[q] -= LevelOf(1)
			if levels[q] < 0 {
				levels[q] = 0
			}
		}
	}

	for p := range c.tokens {
		c.tokens[p].Level = levels[p]
	}
}

// firstWithTag returns the first position of ps with the fine grained tag.
func firstWithTag(c *Context, ps []int, tag string) (int, bool) {
	for _, q := range ps {
		if c.tokens[q].Tag == tag {
			return q, true
		}
	}
	return 0, false
}

// levelPrepositions moves the tokens from a preposition to its object to the
// level of the preposition, when the clause assignment split them.
//
//	She is certain that he will arrive on time.
func (c *Context) levelPrepositions() {
	for p := range c.tokens {
		prep := c.tokens[p]
		if prep.Dep != depPrep && prep.Dep != depAgent {
			continue
		}

		for _, q := range c.children(p) {
			obj := c.tokens[q]
			if obj.Dep != depPobj || obj.Level == prep.Level {
				continue
			}

			start, end := min(p, q), max(p, q)
			for r := start; r <= end; r++ {
				c.tokens[r].Level = prep.Level
			}
		}
	}
}

// intersect returns the positions present in both ascending slices.
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// subtract returns the positions of a not in the ascending slice b.
func subtract(a, b []int) []int {
	out := make([]int, 0, len(a))
	for _, p := range a {
		i := sort.SearchInts(b, p)
		if i < len(b) && b[i] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}
