package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func sentenceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "draw the diagram of a stored sentence",
		ArgsUsage: "<docId> <sentId>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the annotated tokens and the diagram as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable color output"},
			&cli.BoolFlag{Name: "tokens", Usage: "print the annotated tokens table"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: drawgram sentence <docId> <sentId>")
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("docId: %w", err)
			}

			sentId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("sentId: %w", err)
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

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
			}

			svc, err := e.service(c.Context, false)
			if err != nil {
				return err
			}

			a, err := svc.Sentence(c.Context, doc.Sentences[sentId])
			if err != nil {
				return err
			}

			return e.renderer(c, ui).Render(a)
		},
	}
}
