package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/drawgram/annotate"
	"github.com/revelaction/drawgram/role"
	"github.com/revelaction/drawgram/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "annotation statistics of one or all stored documents",
		ArgsUsage: "[docId]",
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

			hdl := stat.NewHandler(e.pipeline())

			if c.NArg() > 0 {
				docId, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("docId: %w", err)
				}

				doc, err := repo.Read(docId)
				if err != nil {
					return err
				}

				hdl.Aggregate(doc)
				printStats(ui.Out, hdl.Get())
				return nil
			}

			docs, err := repo.List()
			if err != nil {
				return err
			}

			progress := uiprogress.New()
			progress.SetOut(ui.Err)
			progress.Start()

			bar := progress.AddBar(len(docs))
			bar.AppendCompleted()
			bar.PrependElapsed()
			// Append Doc name to the progress bar
			bar.AppendFunc(func(b *uiprogress.Bar) string {
				if b.Current() == 0 {
					return ""
				}
				return docs[b.Current()-1].Title
			})

			for _, meta := range docs {
				doc, err := repo.Read(meta.Id)
				if err != nil {
					progress.Stop()
					return err
				}

				hdl.Aggregate(doc)
				bar.Incr()
			}
			progress.Stop()

			printStats(ui.Out, hdl.Get())
			return nil
		},
	}
}

func printStats(w io.Writer, stats stat.Stats) {
	fmt.Fprintf(w, "Num docs %d, num sentences %d, num tokens per sentence %d\n",
		stats.NumDocs, stats.NumSentences, stats.TokensPerSentenceMean)
	fmt.Fprintf(w, "Sentences without roles %d, clauses %d, max depth %d, links %d\n",
		stats.NumWithoutRoles, stats.NumClauses, stats.MaxDepth, stats.Links)

	roles := make([]role.Role, 0, len(stats.Roles))
	for r := range stats.Roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	for _, r := range roles {
		fmt.Fprintf(w, "  %-30s %6d\n", r, stats.Roles[r])
	}

	kinds := make([]annotate.Kind, 0, len(stats.Chunks))
	for k := range stats.Chunks {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		fmt.Fprintf(w, "  %-30s %6d\n", k, stats.Chunks[k])
	}
}
