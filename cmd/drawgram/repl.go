package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/render"
	"github.com/revelaction/drawgram/repl"
	"github.com/revelaction/drawgram/storage"
)

func replCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "interactive prompt, every line typed is diagrammed",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "disable color output"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			svc, err := e.service(c.Context, false)
			if err != nil {
				return err
			}

			// stored sentences are optional in the prompt
			var repo storage.DocReader
			if r, err := e.docRepository(); err == nil {
				repo = r
			} else {
				e.logger.Info().Err(err).Msg("no stored documents")
			}

			r := render.NewTextRenderer(ui.Out, e.lexicon)
			r.HasColor = e.cfg.Render.Color && !c.Bool("no-color")

			return repl.NewHandler(svc, repo, r, ui.Out).Run(c.Context)
		},
	}
}
