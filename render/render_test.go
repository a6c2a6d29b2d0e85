package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/sentence"
)

func loadAnnotated(t *testing.T, name string) Annotated {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	require.NoError(t, err)

	var s sentence.Sentence
	require.NoError(t, json.Unmarshal(data, &s))

	return Annotated{
		Text:   s.String(),
		Tokens: annotate.New(nil, zerolog.Nop()).Annotate(s),
	}
}

func draw(t *testing.T, name string) Diagram {
	t.Helper()
	a := loadAnnotated(t, name)
	return Draw(a.Text, a.Tokens, nil)
}

func TestDrawObjectComplement(t *testing.T) {
	d := draw(t, "elected")

	assert.Equal(t, []string{
		"     >                     ",
		"They elected him president.",
		"     ◯_______□___[         ",
	}, d.Lines())
}

func TestDrawPreposition(t *testing.T) {
	d := draw(t, "sat")

	require.Len(t, d.Rows, 1)
	assert.Equal(t, "    ◯   ▽______□     ", d.Rows[0].Line)
}

func TestDrawInfinitive(t *testing.T) {
	d := draw(t, "want")

	assert.Equal(t, []string{
		"  |                   ",
		"I want you to succeed.",
		"  ◯____□___[        ] ",
		"           to.......R ",
	}, d.Lines())
}

func TestDrawGerundSubject(t *testing.T) {
	d := draw(t, "watching")

	require.Len(t, d.Rows, 2)
	assert.Equal(t, "[             ] ◯__________□     ", d.Rows[0].Line)
	assert.Equal(t, "R....ing_□                       ", d.Rows[1].Line)
}

func TestDrawTenseAspectVoice(t *testing.T) {
	d := draw(t, "called")

	assert.Equal(t, "     |         P    i     ^      ", d.Tense)
	assert.Equal(t, []Row{{Level: 0, Line: "     .....................◯      "}}, d.Rows)

	require.Len(t, d.Chains, 1)
	vc := d.Chains[0]
	assert.Equal(t, "called", vc.MainVerb)
	assert.Equal(t, []string{"will", "have", "been", "being", "called"}, vc.Verbs)
	assert.Equal(t, []string{AspectPerfect, AspectProgressive}, vc.Aspects)
	assert.Equal(t, VoicePassive, vc.Voice)
}

func TestDrawWidth(t *testing.T) {
	for _, name := range []string{"elected", "sat", "want", "called", "watching"} {
		a := loadAnnotated(t, name)
		d := Draw(a.Text, a.Tokens, nil)

		width := len([]rune(a.Text))
		for _, line := range d.Lines() {
			assert.Equal(t, width, len([]rune(line)), "%s: %q", name, line)
		}

		// rows are sorted
		for i := 1; i < len(d.Rows); i++ {
			assert.Less(t, d.Rows[i-1].Level, d.Rows[i].Level)
		}
	}
}

func TestDrawNoTokens(t *testing.T) {
	d := Draw("Hello there.", nil, nil)

	assert.Equal(t, []string{
		"            ",
		"Hello there.",
		"            ",
	}, d.Lines())
	assert.Empty(t, d.Chains)
}

func TestTextRenderer(t *testing.T) {
	a := loadAnnotated(t, "elected")

	var buf bytes.Buffer
	r := NewTextRenderer(&buf, nil)
	require.NoError(t, r.Render(a))
	assert.Equal(t, Draw(a.Text, a.Tokens, nil).String()+"\n", buf.String())

	buf.Reset()
	r.Format = "tokens"
	require.NoError(t, r.Render(a))
	assert.Contains(t, buf.String(), "noun object complement")

	buf.Reset()
	r.Format = "chains"
	require.NoError(t, r.Render(a))
	assert.True(t, strings.HasPrefix(buf.String(), "elected"))
	assert.Contains(t, buf.String(), "voice: active")
}

func TestTextRendererColor(t *testing.T) {
	a := loadAnnotated(t, "sat")

	var buf bytes.Buffer
	r := NewTextRenderer(&buf, nil)
	r.HasColor = true
	require.NoError(t, r.Render(a))

	out := buf.String()
	assert.Contains(t, out, Teal+"sat"+Off)
	assert.Contains(t, out, Green256+"chair"+Off)
	assert.Contains(t, out, Green256+"▽"+Off)
}

func TestNextFormat(t *testing.T) {
	r := NewTextRenderer(nil, nil)

	r.NextFormat()
	assert.Equal(t, "tokens", r.Format)
	r.NextFormat()
	r.NextFormat()
	assert.Equal(t, Defaultformat, r.Format)

	r.NextColor()
	assert.True(t, r.HasColor)
}

func TestJSONRenderer(t *testing.T) {
	a := loadAnnotated(t, "called")
	a.Id, a.DocId = 3, 7

	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer(&buf, nil).Render(a))

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 3, out.Id)
	assert.Equal(t, 7, out.DocId)
	assert.Len(t, out.Tokens, len(a.Tokens))
	assert.Equal(t, Draw(a.Text, a.Tokens, nil).Lines(), out.Diagram)

	require.Len(t, out.Attributes, 1)
	assert.Equal(t, "^", out.Attributes[0].Symbols[26])
}
