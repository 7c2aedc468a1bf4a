package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/umlgarden/umlgarden/internal/logger"
	"github.com/umlgarden/umlgarden/internal/plantuml"
	"github.com/umlgarden/umlgarden/internal/ui"
	"github.com/umlgarden/umlgarden/internal/uml"
	"github.com/umlgarden/umlgarden/types"
)

var noRender bool

var generateCmd = &cobra.Command{
	Use:   "generate <file.py> [file.py...]",
	Short: "Generate a PlantUML class diagram from Python files",
	Long: `Scan the given Python files in order and write a PlantUML class diagram.

Each file becomes a package block holding its classes and their members.
Inheritance and instantiation edges across all files are written at the end.
The diagram is then rendered with the plantuml binary unless --no-render is set
or the binary is not installed.

Examples:
  umlgarden generate animals.py zoo.py
  umlgarden generate --out-dir docs --out-file model.puml src/models.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetCommand("generate", args)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg := GetConfig()
		fs := afero.NewOsFs()
		log, closer, err := logger.Setup(fs, logger.Options{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir})
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer closeLog(closer)

		var renderer diagramRenderer
		if cfg.Render.Enabled && !noRender {
			renderer = plantuml.NewRunner(cfg.Render.Command, cfg.Render.Args, cfg.Render.Timeout)
		}

		_, err = runGenerate(ctx, fs, cfg, args, renderer, log, ui.NewPrinter(cmd.OutOrStdout()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("out-dir", "", "output directory (default \"plantumls\")")
	generateCmd.Flags().String("out-file", "", "output file name (default \"uml-garden.puml\")")
	generateCmd.Flags().BoolVar(&noRender, "no-render", false, "only write the .puml file, do not run plantuml")

	_ = viper.BindPFlag("output.dir", generateCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("output.file", generateCmd.Flags().Lookup("out-file"))
}

// closeLog closes the debug log file, reporting a failure without failing the command.
func closeLog(closer io.Closer) {
	if err := closer.Close(); err != nil {
		LogError("close log", err)
	}
}

// diagramRenderer turns a generated .puml file into an image.
type diagramRenderer interface {
	Render(ctx context.Context, pumlPath string) error
}

// generateResult describes one completed generation.
type generateResult struct {
	Path     string
	Stats    uml.Stats
	Rendered bool
}

// runGenerate writes the diagram for paths and, when renderer is non-nil,
// renders it. A missing renderer binary is reported but not fatal.
func runGenerate(ctx context.Context, fs afero.Fs, cfg *types.AppConfig, paths []string, renderer diagramRenderer, log *slog.Logger, p *ui.Printer) (*generateResult, error) {
	log.Debug("arguments received", "args", paths)

	gen := uml.NewGenerator(fs, uml.WithLogger(log), uml.WithRootObject(cfg.Scan.RootObject))
	outPath, model, err := gen.GenerateFile(ctx, paths, cfg.Output.Dir, cfg.Output.File)
	if err != nil {
		return nil, err
	}

	result := &generateResult{Path: outPath, Stats: uml.ComputeStats(model, cfg.Scan.RootObject)}
	p.Success("Wrote %s", outPath)
	p.Info("  %d classes, %d members, %d inheritance edges, %d associations",
		result.Stats.Classes, result.Stats.Members, result.Stats.Inheritance, result.Stats.Associations)

	if renderer == nil {
		return result, nil
	}

	log.Debug("rendering diagram", "path", outPath)
	if err := renderer.Render(ctx, outPath); err != nil {
		if errors.Is(err, plantuml.ErrRendererNotFound) {
			p.Warn("Skipped rendering: %s is not installed", cfg.Render.Command)
			LogError("render", err)
			return result, nil
		}
		return result, err
	}
	result.Rendered = true
	p.Success("Rendered %s", outPath)
	return result, nil
}
