package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/tmfkit/internal/config"
	"github.com/Faultbox/tmfkit/internal/logger"
	"github.com/Faultbox/tmfkit/pkg/formats"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	flags config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tmftool",
		Short: "Inspect and convert 3MF packages",
		Long: `tmftool reads 3MF (3D Manufacturing Format) packages, resolves their
component objects and build transforms, and reports or exports the
resulting triangle meshes.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.flags.Register(root.PersistentFlags())
	_ = root.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newInfoCmd(a),
		newListCmd(a),
		newExtractCmd(a),
		newExportCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(&a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	a.log = logger.Named("tmf")
	return nil
}

// decode parses one package with the configured model part rule.
func (a *app) decode(path string) (*formats.TMF, error) {
	a.log.Debug("parsing package", zap.String("file", path))
	return formats.ParseTMFFile(path,
		formats.WithLogger(a.log),
		formats.WithModelPart(a.cfg.Import.MatchModelPart))
}
