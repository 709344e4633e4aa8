// Package ruby extracts Bundler dependency graphs from Gemfile.lock.
//
// Specs listed under the GEM, GIT and PATH sections become packages, with
// their indented requirements as edges. The DEPENDENCIES section names the
// project's direct dependencies. A gem declared in a PATH section with
// remote "." is the project itself and supplies its name and version.
package ruby

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

const gemfileLock = "Gemfile.lock"

// Backend implements [deps.Backend] for Bundler projects.
type Backend struct{}

// New returns the RubyGems backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Type() deps.Type { return deps.TypeRubyGems }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, gemfileLock), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := filepath.Join(path, gemfileLock)
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lock, err := parseLockfile(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", file)
	}
	root := lock.graph()
	if root.Name == "" {
		root.Name = filepath.Base(path)
	}
	return []*deps.Node{root}, nil
}
