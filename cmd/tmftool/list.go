package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Faultbox/tmfkit/pkg/archive"
)

type entrySummary struct {
	Name        string `json:"name"`
	Size        uint64 `json:"size"`
	Compressed  uint64 `json:"compressed"`
	IsModelPart bool   `json:"model_part"`
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <file.3mf>",
		Aliases: []string{"ls"},
		Short:   "List package entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := archive.Open(args[0])
			if err != nil {
				return err
			}
			defer pkg.Close()

			// Only the first matching entry is the model part.
			model, _ := pkg.Find(a.cfg.Import.MatchModelPart)

			var entries []entrySummary
			for _, name := range pkg.List() {
				e, _ := pkg.Stat(name)
				entries = append(entries, entrySummary{
					Name:        name,
					Size:        e.UncompressedSize,
					Compressed:  e.CompressedSize,
					IsModelPart: name == model,
				})
			}

			if a.cfg.Output.Format == "json" {
				return renderJSON(cmd.OutOrStdout(), entries)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Entry", "Size", "Compressed", ""})
			for _, e := range entries {
				mark := ""
				if e.IsModelPart {
					mark = "model"
				}
				t.AppendRow(table.Row{e.Name, e.Size, e.Compressed, mark})
			}
			t.AppendFooter(table.Row{fmt.Sprintf("%d entries", len(entries)), "", "", ""})
			t.Render()
			return nil
		},
	}
}
