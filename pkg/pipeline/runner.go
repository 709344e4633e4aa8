package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packman/pkg/bdio"
	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/render/nodelink"
	"github.com/matzehuels/packman/pkg/scan"
)

// Runner executes exports against a backend registry.
//
// The Runner keeps no state between runs; each call to Run gets its own
// scanner and writer.
type Runner struct {
	Registry *deps.Registry
	Logger   *log.Logger
	// Creator is recorded as the generating tool in every document.
	Creator string
	// Now supplies document creation times. Nil means time.Now.
	Now func() time.Time
}

// NewRunner creates a runner over registry.
// If logger is nil, the default logger is used.
func NewRunner(registry *deps.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: registry, Logger: logger, Now: time.Now}
}

// Run performs one export and returns the absolute paths of the BDIO
// documents produced, in scan order.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]string, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutput, err, "create output directory %s", cfg.OutputDir)
	}

	backends := r.registry().Filter(deps.ParseTypes(cfg.TypeOverride, logger))
	if len(backends) == 0 {
		logger.Warn("no package managers selected", "override", cfg.TypeOverride, "available", deps.TypeNames())
		return nil, nil
	}
	logger.Debug("selected package managers", "count", len(backends))

	paths := r.sourcePaths(cfg.SourcePaths)
	results, err := scan.New(logger, cfg.BackendTimeout).Scan(ctx, backends, paths)
	if err != nil {
		return nil, err
	}

	writer := bdio.NewWriter(cfg.OutputDir, cfg.ProjectName, cfg.ProjectVersion, logger)
	writer.Creator = r.Creator
	if r.Now != nil {
		writer.Now = r.Now
	}

	var written []string
	for _, res := range results {
		projects := nonNil(res.Projects)
		files, err := writer.Write(ctx, res.Type, projects)
		written = append(written, files...)
		if err != nil {
			return written, err
		}
		for i, file := range files {
			if err := r.writeGraphs(ctx, file, projects[i], cfg.Graphs); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// sourcePaths makes paths absolute and drops those that are not
// directories. Missing paths are reported but do not fail the run.
func (r *Runner) sourcePaths(paths []string) []string {
	logger := r.logger()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			logger.Warn("skipping source path", "path", p, "err", err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			logger.Warn("skipping source path", "path", abs, "err", err)
			continue
		}
		if !info.IsDir() {
			logger.Warn("skipping source path: not a directory", "path", abs)
			continue
		}
		out = append(out, abs)
	}
	return out
}

// writeGraphs renders project next to its BDIO file, one file per format.
// Rendering problems are logged; failing to write a rendered graph is an
// output error.
func (r *Runner) writeGraphs(ctx context.Context, bdioPath string, project *deps.Node, formats []string) error {
	base := strings.TrimSuffix(bdioPath, bdio.FileExtension)
	for _, format := range formats {
		data, err := nodelink.Render(ctx, project, format, nodelink.Options{Detailed: true})
		if err != nil {
			r.logger().Warn("graph rendering failed", "format", format, "project", project.Name, "err", err)
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeOutput, err, "write graph %s", path)
		}
		r.logger().Info("graph generated", "path", path)
	}
	return nil
}

func (r *Runner) registry() *deps.Registry {
	if r.Registry == nil {
		return deps.NewRegistry()
	}
	return r.Registry
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func nonNil(nodes []*deps.Node) []*deps.Node {
	out := make([]*deps.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
