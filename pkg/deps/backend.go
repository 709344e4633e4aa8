package deps

import (
	"context"
	"os"
	"path/filepath"
)

// Backend detects and extracts one kind of package manager.
//
// Implementations must be safe to call repeatedly with different paths.
// Applicable is expected to be cheap (usually a few stat calls); Extract
// does the parsing. Both should honor ctx cancellation where they block.
type Backend interface {
	// Type returns the package-manager type this backend handles.
	Type() Type
	// Applicable reports whether the package manager was used at path.
	Applicable(ctx context.Context, path string) (bool, error)
	// Extract parses the manifests at path and returns one root node per
	// project found.
	Extract(ctx context.Context, path string) ([]*Node, error)
}

// Status is the result category of running a backend against a path.
type Status int

const (
	// StatusNotApplicable means the package manager is not used at the path.
	StatusNotApplicable Status = iota
	// StatusExtracted means extraction succeeded (possibly with no projects).
	StatusExtracted
	// StatusFailed means applicability or extraction returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotApplicable:
		return "not-applicable"
	case StatusExtracted:
		return "extracted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one backend invocation against one source path.
type Outcome struct {
	Type     Type
	Path     string
	Status   Status
	Projects []*Node
	Err      error
}

// NotApplicable builds an outcome for a backend that does not apply.
func NotApplicable(t Type, path string) Outcome {
	return Outcome{Type: t, Path: path, Status: StatusNotApplicable}
}

// Extracted builds an outcome carrying the extracted projects.
func Extracted(t Type, path string, projects []*Node) Outcome {
	return Outcome{Type: t, Path: path, Status: StatusExtracted, Projects: projects}
}

// Failed builds an outcome for a failed invocation.
func Failed(t Type, path string, err error) Outcome {
	return Outcome{Type: t, Path: path, Status: StatusFailed, Err: err}
}

// FindManifest returns the first of names that exists as a regular file in
// dir. Candidates are tried in order, so lock files should come first.
func FindManifest(dir string, names ...string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// HasManifest is the usual Applicable implementation: it reports whether
// any of names exists in dir.
func HasManifest(dir string, names ...string) bool {
	_, ok := FindManifest(dir, names...)
	return ok
}
