// Package repl is the interactive prompt: every line typed is diagrammed.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/drawgram/diagram"
	"github.com/revelaction/drawgram/render"
	"github.com/revelaction/drawgram/storage"
)

const (
	quitCommand = "quit"

	// commandPrefix is the Character in the prompt that prefixes the commands
	commandPrefix = ":"
)

var commands = []prompt.Suggest{
	{Text: ":sentence", Description: "diagram a stored sentence: :sentence <docId> <sentId>"},
	{Text: ":format", Description: "next output format"},
	{Text: ":color", Description: "toggle color"},
	{Text: quitCommand, Description: "leave"},
}

type Handler struct {
	Service  *diagram.Service
	DocRepo  storage.DocReader
	Renderer *render.TextRenderer
	Out      io.Writer

	history []string
}

func NewHandler(svc *diagram.Service, dr storage.DocReader, r *render.TextRenderer, out io.Writer) *Handler {
	return &Handler{
		Service:  svc,
		DocRepo:  dr,
		Renderer: r,
		Out:      out,
	}
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle color, Ctrl+F: next Format, 🔧 quit")

	for {
		in := prompt.Input("      ✍  ", h.completer,
			prompt.OptionTitle("drawgram"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(h.history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextColor()
					fmt.Fprintln(h.Out, "Color set to "+fmt.Sprintf("%t", h.Renderer.HasColor))
				}}),
		)

		quit, err := h.Execute(ctx, in)
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
		}
	}
}

// Execute runs one input line. It reports whether the prompt should end.
func (h *Handler) Execute(ctx context.Context, in string) (bool, error) {
	in = strings.TrimSpace(in)

	switch {
	case in == "":
		return false, nil
	case in == quitCommand:
		return true, nil
	}

	h.history = append(h.history, in)

	if !strings.HasPrefix(in, commandPrefix) {
		a, err := h.Service.Text(ctx, in)
		if err != nil {
			return false, err
		}
		return false, h.Renderer.Render(a)
	}

	fields := strings.Fields(in)
	switch fields[0] {
	case ":format":
		h.Renderer.NextFormat()
		fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
		return false, nil

	case ":color":
		h.Renderer.NextColor()
		fmt.Fprintln(h.Out, "Color set to "+fmt.Sprintf("%t", h.Renderer.HasColor))
		return false, nil

	case ":sentence":
		return false, h.sentence(ctx, fields[1:])
	}

	return false, fmt.Errorf("unknown command: %s", fields[0])
}

func (h *Handler) sentence(ctx context.Context, args []string) error {
	if h.DocRepo == nil {
		return errors.New("no doc repository")
	}

	if len(args) != 2 {
		return errors.New("usage: :sentence <docId> <sentId>")
	}

	docId, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("docId: %w", err)
	}

	sentId, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("sentId: %w", err)
	}

	doc, err := h.DocRepo.Read(docId)
	if err != nil {
		return err
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
	}

	a, err := h.Service.Sentence(ctx, doc.Sentences[sentId])
	if err != nil {
		return err
	}

	h.Renderer.AddDocName(doc.Id, doc.Title)
	return h.Renderer.Render(a)
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	befCursor := in.TextBeforeCursor()

	// Only one character in line
	if befCursor == "" {
		return nil
	}

	if strings.HasPrefix(befCursor, commandPrefix) || strings.HasPrefix(quitCommand, befCursor) {
		return prompt.FilterHasPrefix(commands, befCursor, true)
	}

	return h.completeHistory(befCursor)
}

// completeHistory suggests the sentences already typed starting with text.
func (h *Handler) completeHistory(text string) (s []prompt.Suggest) {
	seen := map[string]bool{}
	for i := len(h.history) - 1; i >= 0; i-- {
		past := h.history[i]
		if seen[past] || strings.HasPrefix(past, commandPrefix) {
			continue
		}
		seen[past] = true

		if strings.HasPrefix(past, text) && past != text {
			s = append(s, prompt.Suggest{Text: past, Description: "✍ "})
		}
	}

	return s
}
