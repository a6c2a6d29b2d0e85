package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/storage/filesystem"
	"github.com/revelaction/drawgram/storage/sqlite/zombiezen"
)

func importDocCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import-doc",
		Usage: "copy a directory of JSON documents into a SQLite database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "source `DIR` of JSON documents"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "destination SQLite `FILE`"},
		},
		Action: func(c *cli.Context) error {
			from, to := c.String("from"), c.String("to")

			src, err := filesystem.NewDocStore(from)
			if err != nil {
				return err
			}

			var pool Pool
			defer pool.Close()

			p, err := pool.Open(to)
			if err != nil {
				return err
			}

			if err := zombiezen.CreateDocTables(p); err != nil {
				return fmt.Errorf("failed to create docs table: %w", err)
			}

			dst := zombiezen.NewDocStore(p)

			fmt.Fprintf(ui.Out, "Reading docs from %s...\n", from)
			docs, err := src.List()
			if err != nil {
				return err
			}

			progress := uiprogress.New()
			progress.SetOut(ui.Err)
			progress.Start()

			bar := progress.AddBar(len(docs))
			bar.AppendCompleted()
			bar.PrependElapsed()

			count := 0
			for _, meta := range docs {
				doc, err := src.Read(meta.Id)
				if err != nil {
					progress.Stop()
					return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
				}

				if err := dst.Write(doc); err != nil {
					progress.Stop()
					return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
				}
				count++
				bar.Incr()
			}
			progress.Stop()

			fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", count, from, to)
			return nil
		},
	}
}
