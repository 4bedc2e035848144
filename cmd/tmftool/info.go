package main

import (
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.3mf>",
		Short: "Show package, unit and build item information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmf, err := a.decode(args[0])
			if err != nil {
				return err
			}

			s := summarize(args[0], tmf)
			if a.cfg.Output.Format == "json" {
				return renderJSON(cmd.OutOrStdout(), s)
			}
			renderSummary(cmd.OutOrStdout(), s, a.cfg.Output.Precision)
			return nil
		},
	}
}
