package bdio

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packman/pkg/deps"
	perrors "github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/observability"
)

// Writer writes one BDIO file per project root into Dir.
//
// A Writer remembers the files it produced so that two projects which
// collapse onto the same file name within one run are reported. It is not
// safe for concurrent use.
type Writer struct {
	Dir            string
	ProjectName    string // overrides every root's name when non-blank
	ProjectVersion string // overrides every root's version when non-blank
	Creator        string
	Logger         *log.Logger
	Now            func() time.Time

	written map[string]bool
}

// NewWriter creates a writer for dir with the given overrides.
func NewWriter(dir, projectName, projectVersion string, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{
		Dir:            dir,
		ProjectName:    projectName,
		ProjectVersion: projectVersion,
		Logger:         logger,
		Now:            time.Now,
	}
}

// Write exports every project in order and returns the absolute paths of
// the produced files, in the same order. The first I/O failure stops the
// call and is returned as an [perrors.ErrCodeOutput] error together with
// the paths written so far.
func (w *Writer) Write(ctx context.Context, t deps.Type, projects []*deps.Node) ([]string, error) {
	w.logger().Info("creating project BOMs", "type", t, "projects", len(projects))
	var paths []string
	for _, project := range projects {
		if project == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := w.writeProject(ctx, t, project)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) writeProject(ctx context.Context, t deps.Type, project *deps.Node) (string, error) {
	logger := w.logger()
	overrideName := strings.TrimSpace(w.ProjectName) != ""
	overrideVersion := strings.TrimSpace(w.ProjectVersion) != ""
	if overrideName {
		project.Name = w.ProjectName
	}
	if overrideVersion {
		project.Version = w.ProjectVersion
	}

	path, err := filepath.Abs(filepath.Join(w.Dir, FileName(t, project.Name, project.Version)))
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeOutput, err, "resolve output path")
	}

	if info, err := os.Lstat(path); err == nil {
		if info.IsDir() {
			return "", perrors.New(perrors.ErrCodeOutput, "output path %s is a directory", path)
		}
		if err := os.Remove(path); err != nil {
			return "", perrors.Wrap(perrors.ErrCodeOutput, err, "remove stale %s", path)
		}
		observability.Output().OnFileReplaced(ctx, t.String(), path)
		if w.written[path] {
			logger.Warn("overwriting BOM written earlier in this run; projects share a name", "path", path, "project", project.Name, "version", project.Version)
		} else {
			logger.Debug("replaced existing BOM", "path", path)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", perrors.Wrap(perrors.ErrCodeOutput, err, "stat %s", path)
	}

	doc := Transform(project, TransformOptions{Creator: w.Creator, Created: w.now()})
	if overrideName && overrideVersion {
		doc.BillOfMaterials.SpdxName = OverrideTitle(project.Name, project.Version, t)
	}

	if err := ExportJSON(doc, path); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeOutput, err, "write BOM for %s", project.Name)
	}

	if w.written == nil {
		w.written = make(map[string]bool)
	}
	w.written[path] = true

	nodes, edges := deps.Count(project)
	observability.Output().OnFileWritten(ctx, t.String(), path, nodes, edges)
	logger.Info("BDIO generated", "path", path)
	return path, nil
}

func (w *Writer) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}
