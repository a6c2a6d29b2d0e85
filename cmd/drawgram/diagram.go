package main

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/render"
)

func diagramCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "diagram",
		Usage:     "parse a sentence and draw its diagram",
		ArgsUsage: "<text...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the annotated tokens and the diagram as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable color output"},
			&cli.BoolFlag{Name: "tokens", Usage: "print the annotated tokens table"},
			&cli.BoolFlag{Name: "force-fallback", Usage: "ask the language model even if the rules found roles"},
		},
		Action: func(c *cli.Context) error {
			text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if text == "" {
				return errors.New("missing sentence. Usage: drawgram diagram <text...>")
			}

			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			svc, err := e.service(c.Context, c.Bool("force-fallback"))
			if err != nil {
				return err
			}

			a, err := svc.Text(c.Context, text)
			if err != nil {
				return err
			}

			return e.renderer(c, ui).Render(a)
		},
	}
}

// renderer returns the renderer asked for by the command flags.
func (e *env) renderer(c *cli.Context, ui UI) render.Renderer {
	if c.Bool("json") {
		return render.NewJSONRenderer(ui.Out, e.lexicon)
	}

	r := render.NewTextRenderer(ui.Out, e.lexicon)
	r.HasColor = e.cfg.Render.Color && !c.Bool("no-color")
	if c.Bool("tokens") {
		r.Format = "tokens"
	}
	return r
}
