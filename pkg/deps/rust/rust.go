package rust

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

const (
	cargoLock = "Cargo.lock"
	cargoToml = "Cargo.toml"
)

// Backend implements [deps.Backend] for Cargo projects.
type Backend struct{}

// New returns the Cargo backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Type() deps.Type { return deps.TypeCargo }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, cargoLock), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := filepath.Join(path, cargoLock)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", file)
	}
	main, err := readCargoToml(filepath.Join(path, cargoToml))
	if err != nil {
		return nil, err
	}
	return lock.projects(main, filepath.Base(path)), nil
}

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Dependencies []string `toml:"dependencies"`
}

func (p lockPackage) key() string { return p.Name + " " + p.Version }

type manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// readCargoToml returns the zero manifest when the file does not exist or
// is a virtual workspace manifest.
func readCargoToml(path string) (manifest, error) {
	var m manifest
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return m, nil
}

// projects builds one root per local crate. The crate named in Cargo.toml
// comes first; the others follow in lock file order.
func (l lockFile) projects(main manifest, dirName string) []*deps.Node {
	b := deps.NewBuilder(deps.TypeCargo)
	byName := make(map[string][]string)
	for _, p := range l.Packages {
		b.Add(p.key(), p.Name, p.Version)
		byName[p.Name] = append(byName[p.Name], p.key())
	}

	// A dependency entry is "name", "name version" or
	// "name version (source)".
	resolve := func(dep string) (string, bool) {
		fields := strings.Fields(dep)
		if len(fields) == 0 {
			return "", false
		}
		if len(fields) >= 2 {
			return fields[0] + " " + fields[1], true
		}
		if keys := byName[fields[0]]; len(keys) == 1 {
			return keys[0], true
		}
		return "", false
	}

	for _, p := range l.Packages {
		for _, dep := range p.Dependencies {
			if to, ok := resolve(dep); ok {
				b.Link(p.key(), to)
			}
		}
	}

	var local []lockPackage
	for _, p := range l.Packages {
		if p.Source == "" {
			local = append(local, p)
		}
	}
	slices.SortStableFunc(local, func(x, y lockPackage) int {
		return boolRank(y.Name == main.Package.Name) - boolRank(x.Name == main.Package.Name)
	})

	if len(local) == 0 {
		name := main.Package.Name
		if name == "" {
			name = dirName
		}
		return []*deps.Node{b.Project(name, main.Package.Version)}
	}

	// Roots are copies: renaming a project before export must not change
	// the members that depend on it.
	roots := make([]*deps.Node, 0, len(local))
	for _, p := range local {
		n, _ := b.Node(p.key())
		root := deps.NewNode(deps.TypeCargo, n.Name, n.Version)
		roots = append(roots, root.AddChild(n.Children...))
	}
	return roots
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
