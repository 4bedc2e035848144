package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/pkg/archive"
	"github.com/Faultbox/tmfkit/pkg/formats"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "extract <file.3mf> [output_dir|-]",
		Aliases: []string{"x"},
		Short:   "Extract the model part XML",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := "."
			if len(args) > 1 {
				outputDir = args[1]
			}

			pkg, err := archive.Open(args[0])
			if err != nil {
				return err
			}
			defer pkg.Close()

			part, ok := pkg.Find(a.cfg.Import.MatchModelPart)
			if !ok {
				return fmt.Errorf("%s: %w", args[0], formats.ErrModelNotFound)
			}
			data, err := pkg.Read(part)
			if err != nil {
				return err
			}

			if outputDir == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			outputPath := filepath.Join(outputDir, filepath.Base(part))
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}

			a.log.Info("extracted model part", zap.String("part", part), zap.String("path", outputPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted: %s (%d bytes)\n", outputPath, len(data))
			return nil
		},
	}
}
