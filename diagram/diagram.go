// Package diagram runs the whole path of one sentence: parse, annotate,
// fall back to the language model when the rules find nothing, render.
package diagram

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/parser"
	"github.com/revelaction/drawgram/render"
	"github.com/revelaction/drawgram/sentence"
)

// Annotator is the language model fallback.
type Annotator interface {
	Annotate(ctx context.Context, s sentence.Sentence) ([]annotate.Token, error)
}

// Service diagrams sentences. Parser and Fallback may be nil: without a
// Parser only already parsed sentences can be diagrammed, without Fallback
// the rule annotations are always used.
type Service struct {
	Parser   parser.Parser
	Pipeline *annotate.Pipeline
	Fallback Annotator

	// call the Fallback even when the rules produced roles
	Force bool

	Logger zerolog.Logger
}

// Text parses text and annotates it.
func (s *Service) Text(ctx context.Context, text string) (render.Annotated, error) {
	if s.Parser == nil {
		return render.Annotated{}, fmt.Errorf("no parser configured: %w", parser.ErrNoParse)
	}

	sent, err := s.Parser.Parse(ctx, text)
	if err != nil {
		return render.Annotated{}, fmt.Errorf("parse %q: %w", text, err)
	}

	return s.Sentence(ctx, sent)
}

// Sentence annotates an already parsed sentence. A sentence without tokens
// is a missing parse.
func (s *Service) Sentence(ctx context.Context, sent sentence.Sentence) (render.Annotated, error) {
	if len(sent.Tokens) == 0 {
		return render.Annotated{}, parser.ErrNoParse
	}

	a := render.Annotated{
		Id:     sent.Id,
		DocId:  sent.DocId,
		Text:   rebased(sent).String(),
		Tokens: s.Pipeline.Annotate(sent),
	}

	if s.Fallback == nil || (annotate.HasRoles(a.Tokens) && !s.Force) {
		return a, nil
	}

	s.Logger.Debug().Str("text", a.Text).Bool("forced", s.Force).Msg("using fallback")

	tokens, err := s.Fallback.Annotate(ctx, sent)
	if err != nil {
		s.Logger.Warn().Err(err).Str("text", a.Text).Msg("fallback failed, keeping rule annotations")
		return a, nil
	}

	a.Tokens = tokens
	a.Fallback = true
	return a, nil
}

// rebased returns the sentence with offsets starting at 0. Corpus sentences
// carry document offsets.
func rebased(s sentence.Sentence) sentence.Sentence {
	s.Tokens = append([]sentence.Token(nil), s.Tokens...)
	s.Normalize()
	return s
}
