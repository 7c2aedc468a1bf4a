package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/umlgarden/umlgarden/internal/logger"
	"github.com/umlgarden/umlgarden/internal/plantuml"
	"github.com/umlgarden/umlgarden/internal/ui"
	"github.com/umlgarden/umlgarden/internal/uml"
	"github.com/umlgarden/umlgarden/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.py> [file.py...]",
	Short: "Regenerate the diagram whenever an input file changes",
	Long: `Generate the diagram once, then watch the input files and regenerate it
after every change. Press Ctrl-C to stop.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("watch", args)

		if err := uml.ValidatePaths(args); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg := GetConfig()
		fs := afero.NewOsFs()
		log, closer, err := logger.Setup(fs, logger.Options{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir})
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer closeLog(closer)

		p := ui.NewPrinter(cmd.OutOrStdout())
		renderer := watchRenderer(cfg, noRender, p)
		regenerate := func() {
			if _, err := runGenerate(ctx, fs, cfg, args, renderer, log, p); err != nil {
				p.Error("%v", err)
			}
		}

		return runWatch(ctx, cfg, args, regenerate, log, p)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&noRender, "no-render", false, "only write the .puml file, do not run plantuml")
}

// runWatch calls regenerate once, then again after each burst of changes
// to any of paths, until ctx is cancelled.
func runWatch(ctx context.Context, cfg *types.AppConfig, paths []string, regenerate func(), log *slog.Logger, p *ui.Printer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets, dirs, err := watchTargets(paths)
	if err != nil {
		return err
	}
	// Editors often replace files on save, so watch the parent directories.
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	regenerate()
	p.Title(fmt.Sprintf("Watching %d file(s)", len(targets)))
	p.Info("Press Ctrl-C to stop.")

	debounce := cfg.Watch.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantEvent(event, targets) {
				continue
			}
			log.Debug("input changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		case <-timer.C:
			regenerate()
		}
	}
}

const defaultDebounce = 300 * time.Millisecond

// watchRenderer returns the renderer used on every regeneration, or nil when
// rendering is disabled. A missing binary is reported once here instead of
// after each change.
func watchRenderer(cfg *types.AppConfig, disabled bool, p *ui.Printer) diagramRenderer {
	if !cfg.Render.Enabled || disabled {
		return nil
	}
	runner := plantuml.NewRunner(cfg.Render.Command, cfg.Render.Args, cfg.Render.Timeout)
	if !runner.Available() {
		p.Warn("Rendering disabled: %s is not installed", runner.Command)
		return nil
	}
	return runner
}

// watchTargets resolves paths to absolute file paths and their distinct directories.
func watchTargets(paths []string) (map[string]bool, []string, error) {
	targets := make(map[string]bool, len(paths))
	seenDirs := make(map[string]bool)
	var dirs []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return targets, dirs, nil
}

// isRelevantEvent reports whether event changes the content of a watched file.
func isRelevantEvent(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
