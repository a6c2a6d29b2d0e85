package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/drawgram/lexicon"
)

// JSONRenderer writes annotated sentences, with their diagram, as JSON to a
// writer. One object per line.
type JSONRenderer struct {
	W       io.Writer
	Lexicon *lexicon.Lexicon
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer, lx *lexicon.Lexicon) *JSONRenderer {
	return &JSONRenderer{W: w, Lexicon: lx}
}

// Output is the JSON document of one sentence.
type Output struct {
	Annotated

	Diagram    []string    `json:"diagram"`
	Attributes []VerbChain `json:"verb_attribute"`
}

// Render serializes the annotated sentence and its diagram.
func (r *JSONRenderer) Render(a Annotated) error {
	d := Draw(a.Text, a.Tokens, r.Lexicon)

	out := Output{
		Annotated:  a,
		Diagram:    d.Lines(),
		Attributes: d.Chains,
	}

	return json.NewEncoder(r.W).Encode(out)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
