package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/render"
)

func docCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "draw the diagrams of the sentences of a stored document",
		ArgsUsage: "<docId>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "start", Usage: "first sentence"},
			&cli.IntFlag{Name: "n", Value: -1, Usage: "number of sentences, all if negative"},
			&cli.BoolFlag{Name: "json", Usage: "print the annotated tokens and the diagram as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable color output"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: drawgram doc <docId>")
			}

			docId, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return fmt.Errorf("docId: %w", err)
			}

			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			repo, err := e.docRepository()
			if err != nil {
				return err
			}

			doc, err := repo.Read(docId)
			if err != nil {
				return err
			}

			svc, err := e.service(c.Context, false)
			if err != nil {
				return err
			}

			r := e.renderer(c, ui)
			if tr, ok := r.(*render.TextRenderer); ok {
				tr.HasPrefix = true
				tr.AddDocName(doc.Id, doc.Title)
			}

			start := max(c.Int("start"), 0)
			if start >= len(doc.Sentences) {
				return nil
			}

			sentences := doc.Sentences[start:]
			if n := c.Int("n"); n >= 0 && n < len(sentences) {
				sentences = sentences[:n]
			}

			for _, s := range sentences {
				a, err := svc.Sentence(c.Context, s)
				if err != nil {
					e.logger.Warn().Err(err).Int("doc", doc.Id).Int("sentence", s.Id).Msg("sentence skipped")
					continue
				}

				if err := r.Render(a); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
