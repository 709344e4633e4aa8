package python

import (
	"os"
	"regexp"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/packman/pkg/errors"
)

// project is the subset of pyproject.toml packman reads.
type project struct {
	Name    string
	Version string
	// Direct holds normalized names of declared dependencies.
	Direct []string
}

type pyprojectFile struct {
	Tool struct {
		Poetry struct {
			Name            string         `toml:"name"`
			Version         string         `toml:"version"`
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
	Project struct {
		Name                 string              `toml:"name"`
		Version              string              `toml:"version"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// requirementName matches the distribution name at the start of a PEP 508
// requirement.
var requirementName = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)`)

// readPyproject returns the zero project when the file does not exist.
func readPyproject(path string) (project, error) {
	var p project
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, err
	}

	var f pyprojectFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}

	poetry := f.Tool.Poetry
	p.Name, p.Version = poetry.Name, poetry.Version
	if p.Name == "" {
		p.Name = f.Project.Name
	}
	if p.Version == "" {
		p.Version = f.Project.Version
	}

	add := func(name string) {
		if name = normalize(name); name != "" && name != "python" && !slices.Contains(p.Direct, name) {
			p.Direct = append(p.Direct, name)
		}
	}
	tables := []map[string]any{poetry.Dependencies, poetry.DevDependencies}
	for _, g := range sortedKeys(poetry.Group) {
		tables = append(tables, poetry.Group[g].Dependencies)
	}
	for _, t := range tables {
		for _, name := range sortedKeys(t) {
			add(name)
		}
	}
	specs := slices.Clone(f.Project.Dependencies)
	for _, extra := range sortedKeys(f.Project.OptionalDependencies) {
		specs = append(specs, f.Project.OptionalDependencies[extra]...)
	}
	for _, spec := range specs {
		if m := requirementName.FindStringSubmatch(spec); m != nil {
			add(m[1])
		}
	}
	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
