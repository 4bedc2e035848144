package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file.3mf>",
		Short: "Re-parse a package whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("debounce") {
				a.cfg.Watch.Debounce = debounce
			}

			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer watcher.Close()

			// Editors replace files on save, so watch the directory.
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
			}

			out := cmd.OutOrStdout()
			a.report(out, target)
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", target)

			return watchLoop(cmd.Context(), watcher, target, a.cfg.Watch.Debounce, func() {
				a.report(out, target)
			}, a.log)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-parsing (default from config)")
	return cmd
}

// report parses the file and prints a one-line result.
func (a *app) report(w io.Writer, path string) {
	tmf, err := a.decode(path)
	if err != nil {
		fmt.Fprintf(w, "[%s] error: %v\n", time.Now().Format("15:04:05"), err)
		return
	}
	s := summarize(path, tmf)
	line := fmt.Sprintf("[%s] %d items, %d triangles", time.Now().Format("15:04:05"), len(s.Items), s.Triangles)
	if min, max, ok := itemsBounds(tmf.Items); ok {
		p := a.cfg.Output.Precision
		line += fmt.Sprintf(", bounds (%s) - (%s)",
			formatVec([3]float32{min.X, min.Y, min.Z}, p),
			formatVec([3]float32{max.X, max.Y, max.Z}, p))
	}
	fmt.Fprintln(w, line)
}

// watchLoop calls onChange once per burst of events touching target.
// onChange runs on the loop goroutine, so calls never overlap and none
// is in flight once watchLoop returns. It returns nil when ctx is cancelled.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, debounce time.Duration, onChange func(), log *zap.Logger) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			onChange()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("file event", zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
