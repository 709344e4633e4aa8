// Package python extracts PyPI dependency graphs.
//
// poetry.lock is preferred: it pins the complete transitive graph. The
// project's direct dependencies are taken from pyproject.toml when it
// declares them; otherwise every locked package nothing else depends on is
// treated as direct.
//
// Without a lock file, requirements.txt is read. Each requirement becomes a
// direct dependency; "-r" includes are followed.
package python

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
)

const (
	poetryLock   = "poetry.lock"
	requirements = "requirements.txt"
	pyproject    = "pyproject.toml"
)

// Backend implements [deps.Backend] for pip and Poetry projects.
type Backend struct{}

// New returns the PyPI backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Type() deps.Type { return deps.TypePIP }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, poetryLock, requirements), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	manifest, ok := deps.FindManifest(path, poetryLock, requirements)
	if !ok {
		return nil, nil
	}

	project, err := readPyproject(filepath.Join(path, pyproject))
	if err != nil {
		return nil, err
	}

	var root *deps.Node
	if filepath.Base(manifest) == poetryLock {
		root, err = parsePoetryLock(manifest, project)
	} else {
		root, err = parseRequirements(manifest, project)
	}
	if err != nil {
		return nil, err
	}
	if root.Name == "" {
		root.Name = filepath.Base(path)
	}
	return []*deps.Node{root}, nil
}

// normalize applies PEP 503 style normalization so that "Foo_Bar" and
// "foo-bar" refer to the same package.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", ".", "-").Replace(name)
}
