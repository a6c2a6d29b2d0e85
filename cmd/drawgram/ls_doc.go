package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/storage"
)

func lsDocCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls-doc",
		Usage: "list the stored documents",
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			repo, err := e.docRepository()
			if err != nil {
				return err
			}

			// labels are only known once the docs are read
			if p, ok := repo.(storage.Preloader); ok {
				if err := p.Preload(nil); err != nil {
					return err
				}
			}

			docs, err := repo.List()
			if err != nil {
				return err
			}

			for _, doc := range docs {
				line := fmt.Sprintf("📖 %d %s", doc.Id, doc.Title)
				if len(doc.Labels) > 0 {
					line += " [" + strings.Join(doc.Labels, ",") + "]"
				}
				fmt.Fprintln(ui.Out, line)
			}

			return nil
		},
	}
}
