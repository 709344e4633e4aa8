package javascript

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

type packageFile struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
}

// directDeps returns the declared dependency ranges, keyed by name.
// Regular dependencies win over dev and optional declarations.
func (p packageFile) directDeps() map[string]string {
	out := make(map[string]string)
	for _, m := range []map[string]string{p.OptionalDependencies, p.DevDependencies, p.Dependencies} {
		for name, spec := range m {
			out[name] = spec
		}
	}
	return out
}

func readPackageJSON(path string) (packageFile, error) {
	var pkg packageFile
	data, err := os.ReadFile(path)
	if err != nil {
		return pkg, err
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return pkg, nil
}

func parsePackageJSON(path string) (*deps.Node, error) {
	pkg, err := readPackageJSON(path)
	if err != nil {
		return nil, err
	}

	root := deps.NewNode(deps.TypeNPM, pkg.Name, pkg.Version)
	direct := pkg.directDeps()
	for _, name := range sortedKeys(direct) {
		root.AddChild(deps.NewNode(deps.TypeNPM, name, direct[name]))
	}
	return root, nil
}
