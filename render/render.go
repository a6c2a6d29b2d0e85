package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/lexicon"
	"github.com/revelaction/drawgram/role"
)

const (
	Defaultformat = "diagram"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// SupportedFormats are the output formats of the TextRenderer
//
// diagram: tense row, sentence and symbol rows
// tokens: the diagram followed by the annotated tokens table
// chains: the verb chains with tense, aspect and voice
func SupportedFormats() []string {
	return []string{"diagram", "tokens", "chains"}
}

// Annotated is an annotated sentence, the input of the renderers.
type Annotated struct {
	Id    int `json:"id"`
	DocId int `json:"doc_id"`

	Text   string           `json:"text"`
	Tokens []annotate.Token `json:"tokens"`

	// the annotations come from the language model
	Fallback bool `json:"fallback,omitempty"`
}

// Renderer writes annotated sentences.
type Renderer interface {
	Render(a Annotated) error
}

type TextRenderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	Format string

	Lexicon *lexicon.Lexicon

	DocNames map[int]string
}

func NewTextRenderer(w io.Writer, lx *lexicon.Lexicon) *TextRenderer {
	return &TextRenderer{
		W:        w,
		Format:   Defaultformat,
		Lexicon:  lx,
		DocNames: map[int]string{},
	}
}

func (r *TextRenderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

func (r *TextRenderer) Render(a Annotated) error {
	d := Draw(a.Text, a.Tokens, r.Lexicon)

	if r.HasPrefix {
		if _, err := fmt.Fprintln(r.W, r.prefix(a)); err != nil {
			return err
		}
	}

	var text string
	switch r.Format {
	case "chains":
		text = r.chains(d.Chains)
	case "tokens":
		text = r.diagram(d, a) + "\n" + r.table(a.Tokens)
	default:
		text = r.diagram(d, a)
	}

	_, err := fmt.Fprintln(r.W, text)
	return err
}

func (r *TextRenderer) diagram(d Diagram, a Annotated) string {
	if !r.HasColor {
		return d.String()
	}

	lines := []string{Yellow256 + d.Tense + Off, r.sentence(a.Text, a.Tokens)}
	for _, row := range d.Rows {
		lines = append(lines, colorRow(row.Line))
	}

	return strings.Join(lines, "\n")
}

// sentence returns the sentence text with the role bearing tokens colored.
func (r *TextRenderer) sentence(text string, tokens []annotate.Token) string {
	runes := []rune(text)

	var str strings.Builder
	var pos int
	for _, token := range tokens {
		// multi token words share the same idx, we avoid rendering the text twice.
		if token.Idx < pos {
			continue
		}

		e := min(token.Idx+runeLen(token.Text), len(runes))
		if token.Idx > len(runes) {
			break
		}

		str.WriteString(string(runes[pos:token.Idx]))
		str.WriteString(colorToken(string(runes[token.Idx:e]), token, r.HasColor))
		pos = e
	}

	if pos < len(runes) {
		str.WriteString(string(runes[pos:]))
	}

	return str.String()
}

func colorToken(text string, token annotate.Token, hasColor bool) string {
	if !hasColor || token.Role1 == role.None {
		return text
	}

	if token.Role1 == role.Verb {
		return Teal + text + Off
	}

	return Green256 + text + Off
}

// colorRow colors the role symbols of a row, fillers are left as they are.
func colorRow(line string) string {
	var str strings.Builder
	for _, c := range line {
		switch c {
		case role.Blank, role.Underline, role.Dot:
			str.WriteRune(c)
		default:
			str.WriteString(Green256 + string(c) + Off)
		}
	}
	return str.String()
}

func (r *TextRenderer) table(tokens []annotate.Token) string {
	var str strings.Builder
	fmt.Fprintf(&str, "%5s %-12s %-6s %-5s %-10s %5s %-28s %-14s %-22s %5s %s\n",
		"idx", "text", "pos", "tag", "dep", "head", "role1", "role2", "role3", "level", "combine")

	for _, t := range tokens {
		links := []string{}
		for _, l := range t.Combine {
			links = append(links, fmt.Sprintf("%d:%s", l.Idx, l.Role1))
		}

		fmt.Fprintf(&str, "%5d %-12s %-6s %-5s %-10s %5d %-28s %-14s %-22s %5s %s\n",
			t.Idx, t.Text, t.Pos, t.Tag, t.Dep, t.Head,
			t.Role1, t.Role2, t.Role3, t.Level, strings.Join(links, ","))
	}

	return strings.TrimRight(str.String(), "\n")
}

func (r *TextRenderer) chains(chains []VerbChain) string {
	lines := []string{}
	for _, vc := range chains {
		voice := vc.Voice
		if voice == "" {
			voice = "active"
		}

		line := fmt.Sprintf("%-12s [%s] aspect: %s voice: %s",
			vc.MainVerb, strings.Join(vc.Verbs, " "), strings.Join(vc.Aspects, ","), voice)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (r *TextRenderer) prefix(a Annotated) string {
	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(a.DocId), a.DocId, a.Id)
}

func (r *TextRenderer) title(docId int) string {
	title := r.DocNames[docId]
	l := len(title)
	var part string
	if l <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	if !r.HasColor {
		return part
	}

	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *TextRenderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *TextRenderer) NextColor() {

	// toggle
	r.HasColor = !r.HasColor
}

// compile-time interface check
var _ Renderer = (*TextRenderer)(nil)
