package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/pkg/formats"
)

type exportItem struct {
	Name  string    `json:"name"`
	Faces []float32 `json:"faces"`
}

func newExportCmd(a *app) *cobra.Command {
	var (
		out  string
		kind string
	)

	cmd := &cobra.Command{
		Use:   "export <file.3mf>",
		Short: "Export resolved build items as STL or JSON",
		Long: `Export writes every build item with all component and item transforms
applied. STL output merges the items into one solid; JSON output keeps
one {name, faces} record per item.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" {
				kind = exportKind(out)
			}
			if kind != "stl" && kind != "json" {
				return fmt.Errorf("unknown export type %q (want stl or json)", kind)
			}

			tmf, err := a.decode(args[0])
			if err != nil {
				return err
			}

			if out != "" && out != "-" {
				err = writeExportFile(out, kind, a.cfg.Export.Header, tmf.Items)
			} else {
				err = writeExport(cmd.OutOrStdout(), kind, a.cfg.Export.Header, tmf.Items)
			}
			if err != nil {
				return err
			}

			a.log.Info("exported",
				zap.String("file", args[0]),
				zap.String("type", kind),
				zap.Int("items", len(tmf.Items)))
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d items to %s\n", len(tmf.Items), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&kind, "type", "", "Export type: stl or json (default from --out extension, else json)")
	return cmd
}

// exportKind picks the export type from the output file extension.
func exportKind(out string) string {
	if strings.EqualFold(filepath.Ext(out), ".stl") {
		return "stl"
	}
	return "json"
}

// writeExportFile writes the export to path. A failed close is returned
// when the write itself succeeded.
func writeExportFile(path, kind, header string, items []formats.TMFItem) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	return writeExport(f, kind, header, items)
}

func writeExport(w io.Writer, kind, header string, items []formats.TMFItem) error {
	if kind == "stl" {
		return formats.WriteSTL(w, header, items)
	}

	records := make([]exportItem, len(items))
	for i, it := range items {
		records[i] = exportItem{Name: it.Name, Faces: it.Faces}
	}
	bw := bufio.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(records); err != nil {
		return err
	}
	return bw.Flush()
}
