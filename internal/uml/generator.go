package uml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrFolderArgument is returned for an input path that does not name a file.
var ErrFolderArgument = errors.New("folder arguments are unsupported")

// Generator drives scanning and rendering over a list of source files.
type Generator struct {
	fs         afero.Fs
	logger     *slog.Logger
	rootObject string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRootObject adds a parent name suppressed in inheritance edges, next
// to DefaultRootObject.
func WithRootObject(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.rootObject = name
		}
	}
}

// NewGenerator creates a generator reading sources from fs.
// Use afero.NewOsFs() for real files, or afero.NewMemMapFs() for testing.
func NewGenerator(fs afero.Fs, opts ...Option) *Generator {
	g := &Generator{
		fs:         fs,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		rootObject: DefaultRootObject,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidatePaths checks that every input names a file, i.e. carries an extension.
func ValidatePaths(paths []string) error {
	for _, p := range paths {
		if filepath.Ext(p) == "" {
			return fmt.Errorf("%w: %s", ErrFolderArgument, p)
		}
	}
	return nil
}

// Generate scans paths in order and writes the diagram to w. The returned
// model holds everything that was discovered.
func (g *Generator) Generate(ctx context.Context, paths []string, w io.Writer) (*ClassModel, error) {
	if err := ValidatePaths(paths); err != nil {
		return nil, err
	}

	model := NewClassModel()
	renderer := NewRenderer(w, g.rootObject)
	scanner := NewScanner(model, renderer, g.logger)
	cursor := &ScanCursor{}

	renderer.Open()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return model, err
		}

		g.logger.Debug("scanning file", "path", path)
		renderer.PackageHeader(cursor, path)
		if err := g.scanFile(scanner, cursor, path); err != nil {
			return model, err
		}
		renderer.VariableBlock(model, cursor)
		g.logger.Debug("scanned file", "path", path, "package", cursor.Package, "classes", cursor.Declared)
	}
	renderer.Relationships(model)
	renderer.Close()

	if err := renderer.Err(); err != nil {
		return model, fmt.Errorf("write diagram: %w", err)
	}
	return model, nil
}

func (g *Generator) scanFile(scanner *Scanner, cursor *ScanCursor, path string) error {
	f, err := g.fs.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := scanner.Scan(cursor, f); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// GenerateFile writes the diagram to outDir/outFile, creating outDir if
// needed, and returns the path written. Inputs are validated before the
// output file is created.
func (g *Generator) GenerateFile(ctx context.Context, paths []string, outDir, outFile string) (outPath string, model *ClassModel, err error) {
	if err := ValidatePaths(paths); err != nil {
		return "", nil, err
	}

	if err := g.fs.MkdirAll(outDir, 0755); err != nil {
		return "", nil, fmt.Errorf("create output directory: %w", err)
	}

	outPath = filepath.Join(outDir, outFile)
	f, err := g.fs.Create(outPath)
	if err != nil {
		return "", nil, fmt.Errorf("create %s: %w", outPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", outPath, cerr)
		}
	}()

	model, err = g.Generate(ctx, paths, f)
	if err != nil {
		return outPath, model, err
	}

	g.logger.Debug("diagram written", "path", outPath, "stats", ComputeStats(model, g.rootObject))
	return outPath, model, nil
}

// Stats summarizes a model.
type Stats struct {
	Classes      int
	Members      int
	Inheritance  int
	Associations int
}

// ComputeStats counts what the renderer will draw for model.
func ComputeStats(model *ClassModel, rootObject string) Stats {
	if model == nil {
		return Stats{}
	}
	if rootObject == "" {
		rootObject = DefaultRootObject
	}
	s := Stats{
		Classes:      len(model.Classes),
		Inheritance:  len(model.Inheritance(rootObject)),
		Associations: len(model.Associations()),
	}
	for _, class := range model.Classes {
		s.Members += len(model.MembersOf[class])
	}
	return s
}
