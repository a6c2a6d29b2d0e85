// Package annotate decorates a parsed sentence with the diagram annotations:
// grammatical roles, nesting levels, chunk functions and links.
//
// The pipeline is a fixed sequence of passes over a per sentence Context:
//
//	classify -> repair -> levels -> chunks -> prepositions -> links
//
// Every pass reads the result of the previous ones and only writes the
// fields it owns.
package annotate

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/sentence"
)

// dependency labels
const (
	depRoot   = "root"
	depNsubj  = "nsubj"
	depNsubjP = "nsubjpass"
	depCsubj  = "csubj"
	depDobj   = "dobj"
	depObj    = "obj"
	depIobj   = "iobj"
	depDative = "dative"
	depPrep   = "prep"
	depAgent  = "agent"
	depPcomp  = "pcomp"
	depPobj   = "pobj"
	depCc     = "cc"
	depConj   = "conj"
	depMark   = "mark"
	depAttr   = "attr"
	depAcomp  = "acomp"
	depOprd   = "oprd"
	depXcomp  = "xcomp"
	depCcomp  = "ccomp"
	depAdvcl  = "advcl"
	depAdvmod = "advmod"
	depAcl    = "acl"
	depRelcl  = "relcl"
	depAppos  = "appos"
	depAux    = "aux"
	depAuxP   = "auxpass"
	depPunct  = "punct"
)

// coarse POS
const (
	posVerb  = "VERB"
	posAux   = "AUX"
	posNoun  = "NOUN"
	posPropn = "PROPN"
	posPron  = "PRON"
	posAdj   = "ADJ"
	posAdp   = "ADP"
	posPart  = "PART"
	posSconj = "SCONJ"
	posCconj = "CCONJ"
	posPunct = "PUNCT"
)

var subjectDeps = map[string]bool{
	depNsubj:  true,
	depNsubjP: true,
	depCsubj:  true,
}

func isNominal(pos string) bool {
	return pos == posNoun || pos == posPropn || pos == posPron
}

// Pipeline annotates sentences. It holds no per sentence state and can be
// shared between goroutines.
type Pipeline struct {
	Lexicon *lexicon.Lexicon
	Logger  zerolog.Logger
}

// New returns a Pipeline using the lexicon lx. A nil lexicon means the
// embedded default one.
func New(lx *lexicon.Lexicon, logger zerolog.Logger) *Pipeline {
	if lx == nil {
		lx = lexicon.Default()
	}

	return &Pipeline{Lexicon: lx, Logger: logger}
}

// Annotate runs all the passes on s and returns the annotated tokens in
// sentence order. s is not modified.
func (p *Pipeline) Annotate(s sentence.Sentence) []Token {
	c := p.newContext(s)

	c.classify()
	c.repair()
	c.assignLevels()
	c.classifyChunks()
	c.levelPrepositions()
	c.link()

	c.log.Debug().
		Int("tokens", len(c.tokens)).
		Int("clauses", len(c.units)).
		Bool("roles", HasRoles(c.tokens)).
		Msg("annotated sentence")

	return c.tokens
}

// Context is the state of the annotation of one sentence. It replaces any
// shared memory between passes: the initial roles, the clause units and the
// dependency index live here and die with the sentence.
type Context struct {
	lx  *lexicon.Lexicon
	log zerolog.Logger

	tokens []Token
	ix     *sentence.Index

	// role1 as set by the classifier, before the repair passes
	initial []role.Role

	// clause units, in creation order
	units []clauseUnit
}

func (p *Pipeline) newContext(s sentence.Sentence) *Context {
	// Normalize sorts in place, work on a copy
	s.Tokens = append([]sentence.Token(nil), s.Tokens...)
	s.Normalize()

	tokens := make([]Token, len(s.Tokens))
	for i, t := range s.Tokens {
		tokens[i] = Token{Token: t}
	}

	return &Context{
		lx:      p.Lexicon,
		log:     p.Logger,
		tokens:  tokens,
		ix:      sentence.NewIndex(s.Tokens),
		initial: make([]role.Role, len(tokens)),
	}
}

// head returns the position of the head of the token at p. The root is its
// own head.
func (c *Context) head(p int) (int, bool) {
	return c.ix.Pos(c.tokens[p].Head)
}

// head2 returns the position of the head of the head of p.
func (c *Context) head2(p int) (int, bool) {
	h, ok := c.head(p)
	if !ok {
		return 0, false
	}
	return c.head(h)
}

func (c *Context) headIs(p, h int) bool {
	got, ok := c.head(p)
	return ok && got == h
}

func (c *Context) head2Is(p, h int) bool {
	got, ok := c.head2(p)
	return ok && got == h
}

// sameHead reports whether p and q depend on the same token.
func (c *Context) sameHead(p, q int) bool {
	hp, ok := c.head(p)
	if !ok {
		return false
	}
	return c.headIs(q, hp)
}

func (c *Context) children(p int) []int {
	return c.ix.Children(p)
}

// headDep returns the dependency label of the head of p.
func (c *Context) headDep(p int) string {
	h, ok := c.head(p)
	if !ok {
		return ""
	}
	return c.tokens[h].Dep
}

// IsLevelTrigger reports whether the dependency label dep opens a clause
// level.
func IsLevelTrigger(dep string) bool {
	return levelTriggers[strings.ToLower(dep)]
}
