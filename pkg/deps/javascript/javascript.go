package javascript

import (
	"context"
	"path/filepath"

	"github.com/matzehuels/packman/pkg/deps"
)

// Manifest file names, lock files first.
var manifests = []string{"npm-shrinkwrap.json", "package-lock.json", "package.json"}

// Backend implements [deps.Backend] for npm projects.
type Backend struct{}

// New returns the npm backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Type() deps.Type { return deps.TypeNPM }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, manifests...), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	manifest, ok := deps.FindManifest(path, manifests...)
	if !ok {
		return nil, nil
	}

	var (
		root *deps.Node
		err  error
	)
	if filepath.Base(manifest) == "package.json" {
		root, err = parsePackageJSON(manifest)
	} else {
		root, err = parseLock(manifest)
	}
	if err != nil {
		return nil, err
	}
	if root.Name == "" {
		root.Name = filepath.Base(path)
	}
	return []*deps.Node{root}, nil
}
