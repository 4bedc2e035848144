package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <file.3mf>...",
		Short: "Parse several packages concurrently and summarize them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				if workers < 1 {
					return fmt.Errorf("--workers must be >= 1, got %d", workers)
				}
				a.cfg.Batch.Workers = workers
			}

			results := a.parseAll(args)

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}

			if a.cfg.Output.Format == "json" {
				if err := renderJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				t := newTable(cmd.OutOrStdout())
				t.AppendHeader(table.Row{"File", "Unit", "Items", "Triangles", "Status"})
				for _, r := range results {
					status := "ok"
					if r.Error != "" {
						status = r.Error
					}
					t.AppendRow(table.Row{r.File, r.Unit, len(r.Items), r.Triangles, status})
				}
				t.Render()
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Number of files parsed at once (default from config)")
	return cmd
}

// parseAll parses every file independently; results keep argument order.
func (a *app) parseAll(files []string) []fileSummary {
	results := make([]fileSummary, len(files))

	var g errgroup.Group
	g.SetLimit(a.cfg.Batch.Workers)
	for i, path := range files {
		g.Go(func() error {
			tmf, err := a.decode(path)
			if err != nil {
				a.log.Warn("parse failed", zap.String("file", path), zap.Error(err))
				results[i] = fileSummary{File: path, Error: err.Error()}
				return nil
			}
			results[i] = summarize(path, tmf)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
