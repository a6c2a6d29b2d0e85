package render

import (
	"sort"
	"strings"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

// Diagram is the drawing of an annotated sentence: the tense/aspect/voice
// row, the sentence and one symbol row per level, in ascending level order.
// All the rows have the width of the sentence.
type Diagram struct {
	Tense string `json:"tense"`
	Text  string `json:"text"`
	Rows  []Row  `json:"rows"`

	Chains []VerbChain `json:"verb_chains,omitempty"`
}

// Row is the symbol row of one level.
type Row struct {
	Level int    `json:"level"`
	Line  string `json:"line"`
}

// Lines returns the rows of the diagram, starting with the tense row and the
// sentence.
func (d Diagram) Lines() []string {
	lines := []string{d.Tense, d.Text}
	for _, r := range d.Rows {
		lines = append(lines, r.Line)
	}
	return lines
}

func (d Diagram) String() string {
	return strings.Join(d.Lines(), "\n")
}

// roles closing a noun chunk with ]
var chunkEndRoles = []role.Role{
	role.NounSubjectComplement,
	role.Object,
	role.IndirectObject,
	role.DirectObject,
	role.NounObjectComplement,
}

// grid holds the symbol rows while drawing. Positions are rune offsets in
// the sentence; writes outside the sentence are ignored.
type grid struct {
	width  int
	rows   map[int][]rune
	tokens []annotate.Token
	byIdx  map[int]int
}

func newGrid(text string, tokens []annotate.Token) *grid {
	g := &grid{
		width:  runeLen(text),
		rows:   map[int][]rune{},
		tokens: tokens,
		byIdx:  make(map[int]int, len(tokens)),
	}

	for i, t := range tokens {
		if _, ok := g.byIdx[t.Idx]; !ok {
			g.byIdx[t.Idx] = i
		}
	}

	return g
}

func (g *grid) row(level int) []rune {
	r, ok := g.rows[level]
	if !ok {
		r = []rune(strings.Repeat(string(role.Blank), g.width))
		g.rows[level] = r
	}
	return r
}

// set writes s at position i of the row, whatever it holds.
func (g *grid) set(level, i int, s rune) {
	if i < 0 || i >= g.width {
		return
	}
	g.row(level)[i] = s
}

// fill writes s at position i of the row only if blank.
func (g *grid) fill(level, i int, s rune) {
	if i < 0 || i >= g.width {
		return
	}

	r := g.row(level)
	if r[i] == role.Blank {
		r[i] = s
	}
}

// fillBetween fills the positions strictly between from and to.
func (g *grid) fillBetween(level, from, to int, s rune) {
	if from > to {
		from, to = to, from
	}

	for i := from + 1; i < to; i++ {
		g.fill(level, i, s)
	}
}

// end returns the position of the last character of t.
func end(t annotate.Token) int {
	return t.Idx + runeLen(t.Text) - 1
}

// Draw draws the diagram of the sentence text annotated with tokens.
func Draw(text string, tokens []annotate.Token, lx *lexicon.Lexicon) Diagram {
	if lx == nil {
		lx = lexicon.Default()
	}

	g := newGrid(text, tokens)

	g.row(0)
	for _, t := range tokens {
		g.row(t.Level.Depth())

		if t.Level.IsConnector() {
			g.row(t.Level.Depth() + 1)
		}

		if len(t.Combine) > 0 {
			g.row(t.Level.Row())
		}
	}

	g.chunkMarks()
	g.symbols()
	g.links()
	g.brackets()
	g.verbGroups()
	g.auxBridges()

	chains := Chains(tokens, lx)

	d := Diagram{
		Tense:  tenseRow(g.width, chains),
		Text:   text,
		Chains: chains,
	}

	levels := make([]int, 0, len(g.rows))
	for l := range g.rows {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	for _, l := range levels {
		d.Rows = append(d.Rows, Row{Level: l, Line: string(g.rows[l])})
	}

	return d
}

// chunkMarks draws the end of noun chunks and the infinitive and gerund
// phrase marks under their connector.
func (g *grid) chunkMarks() {
	for _, t := range g.tokens {
		if t.Chunk == nil || !t.Level.IsConnector() {
			continue
		}

		depth := t.Level.Depth()

		if t.Role1.In(chunkEndRoles...) && t.Pos != "VERB" {
			if p, ok := g.byIdx[t.Chunk.End]; ok {
				g.set(depth, end(g.tokens[p]), role.ChunkEnd)
			}
		}

		switch t.Role2 {
		case role.ToInfinitive:
			verb, ok := g.firstVerb(func(u annotate.Token) bool {
				return u.Idx > t.Idx && u.Level.Depth() == depth+1
			})
			if !ok {
				continue
			}

			ve := end(verb)
			g.set(depth+1, t.Idx, 't')
			g.set(depth+1, t.Idx+1, 'o')
			g.fillBetween(depth+1, t.Idx+1, ve, role.Dot)
			g.set(depth+1, ve, 'R')

		case role.Gerund:
			verb, ok := g.firstVerb(func(u annotate.Token) bool {
				return u.Idx >= t.Idx && (u.Level == t.Level || u.Level.Depth() == depth+1)
			})
			if !ok {
				continue
			}

			ve := end(verb)
			g.set(depth+1, t.Idx, 'R')
			g.fillBetween(depth+1, t.Idx, ve-2, role.Dot)
			g.set(depth+1, ve-2, 'i')
			g.set(depth+1, ve-1, 'n')
			g.set(depth+1, ve, 'g')
		}
	}
}

func (g *grid) firstVerb(f func(annotate.Token) bool) (annotate.Token, bool) {
	for _, u := range g.tokens {
		if u.Pos == "VERB" && f(u) {
			return u, true
		}
	}
	return annotate.Token{}, false
}

// symbols draws role1 on the row of the token, and role2 of connectors one
// row below.
func (g *grid) symbols() {
	for _, t := range g.tokens {
		if s, ok := t.Role1.Symbol(); ok {
			g.fill(t.Level.Depth(), t.Idx, s)
		}

		if !t.Level.IsConnector() {
			continue
		}

		if s, ok := t.Role2.Symbol(); ok {
			g.fill(t.Level.Depth()+1, t.Idx, s)
		}
	}
}

// links underlines the space between the two ends of every link.
func (g *grid) links() {
	for _, t := range g.tokens {
		for _, l := range t.Combine {
			g.fillBetween(t.Level.Row(), t.Idx, l.Idx, role.Underline)
		}
	}
}

// brackets encloses subject chunks in [] and adverbial chunks in <>.
func (g *grid) brackets() {
	for _, t := range g.tokens {
		if t.Chunk == nil {
			continue
		}

		var open, closing rune
		switch t.Role3 {
		case role.ChunkSubject:
			open, closing = role.SubjectOpen, role.ChunkEnd
		case role.ChunkAdverbModifier:
			open, closing = role.AdverbOpen, role.AdverbClose
		default:
			continue
		}

		p, ok := g.byIdx[t.Chunk.End]
		if !ok {
			continue
		}

		depth := t.Level.Depth()
		g.set(depth, t.Idx, open)
		g.set(depth, end(g.tokens[p]), closing)
	}
}

var verbGroupDeps = map[string]bool{
	"root":  true,
	"conj":  true,
	"xcomp": true,
	"ccomp": true,
}

func isVerbal(t annotate.Token) bool {
	return t.Pos == "VERB" || t.Pos == "AUX"
}

// verbGroups joins with dots coordinated verbs of the same level, when no
// subject stands between them.
func (g *grid) verbGroups() {
	for i, t := range g.tokens {
		if !isVerbal(t) || !verbGroupDeps[t.Dep] || t.Level.IsConnector() {
			continue
		}

		last := -1
		for _, u := range g.tokens[i+1:] {
			if u.Idx <= t.Idx || u.Level != t.Level || !isVerbal(u) || !verbGroupDeps[u.Dep] {
				continue
			}

			if g.subjectBetween(t.Idx, u.Idx, &t.Level) {
				break
			}
			last = u.Idx
		}

		if last >= 0 {
			g.fillBetween(t.Level.Depth(), t.Idx, last, role.Dot)
		}
	}
}

// auxBridges joins with dots an auxiliary and its main verb. The auxiliary
// is marked ∩ when the subject stands between them (questions).
func (g *grid) auxBridges() {
	for i, t := range g.tokens {
		if t.Pos != "AUX" || (t.Dep != "aux" && t.Dep != "auxpass") || t.Level.IsConnector() {
			continue
		}

		var verb *annotate.Token
		for j := i + 1; j < len(g.tokens); j++ {
			u := g.tokens[j]
			if u.Role1 == role.Verb && u.Level == t.Level && u.Idx > t.Idx {
				verb = &g.tokens[j]
				break
			}
		}
		if verb == nil {
			continue
		}

		depth := t.Level.Depth()
		if g.subjectBetween(t.Idx, verb.Idx, nil) {
			g.fill(depth, t.Idx, role.Question)
		} else {
			g.fill(depth, t.Idx, role.Dot)
		}

		g.fillBetween(depth, t.Idx, verb.Idx, role.Dot)
	}
}

// subjectBetween reports whether a subject lies strictly between the
// offsets from and to, on the level l if not nil.
func (g *grid) subjectBetween(from, to int, l *annotate.Level) bool {
	for _, s := range g.tokens {
		if s.Role1 != role.Subject || s.Idx <= from || s.Idx >= to {
			continue
		}
		if l != nil && s.Level != *l {
			continue
		}
		return true
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}
