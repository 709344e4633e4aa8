package python

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

type lockFile struct {
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string         `toml:"name"`
	Version      string         `toml:"version"`
	Dependencies map[string]any `toml:"dependencies"`
}

func parsePoetryLock(path string, p project) (*deps.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	b := deps.NewBuilder(deps.TypePIP)
	for _, pkg := range lock.Packages {
		b.Add(normalize(pkg.Name), pkg.Name, pkg.Version)
	}
	for _, pkg := range lock.Packages {
		from := normalize(pkg.Name)
		for _, dep := range sortedKeys(pkg.Dependencies) {
			b.Link(from, normalize(dep))
		}
	}
	return b.Project(p.Name, p.Version, p.Direct...), nil
}
