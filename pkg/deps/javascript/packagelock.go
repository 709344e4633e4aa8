package javascript

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

const modulesDir = "node_modules"

type lockFile struct {
	Name            string                    `json:"name"`
	Version         string                    `json:"version"`
	LockfileVersion int                       `json:"lockfileVersion"`
	Packages        map[string]lockPackage    `json:"packages"`
	Dependencies    map[string]lockDependency `json:"dependencies"`
}

// lockPackage is an entry of the v2/v3 "packages" map.
type lockPackage struct {
	packageFile
	Resolved string `json:"resolved"`
	Link     bool   `json:"link"`
}

// installed returns the names a non-root install depends on at runtime.
func (p lockPackage) installed() []string {
	var names []string
	for _, m := range []map[string]string{p.Dependencies, p.OptionalDependencies, p.PeerDependencies} {
		for name := range m {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// lockDependency is an entry of the nested v1 "dependencies" tree.
type lockDependency struct {
	Version      string                    `json:"version"`
	Dev          bool                      `json:"dev"`
	Requires     map[string]string         `json:"requires"`
	Dependencies map[string]lockDependency `json:"dependencies"`
}

func parseLock(file string) (*deps.Node, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", file)
	}

	// package.json is optional next to a lock file; it only supplies the
	// project identity and, for v1 locks, the direct dependencies.
	var manifest packageFile
	if pkg, err := readPackageJSON(filepath.Join(filepath.Dir(file), "package.json")); err == nil {
		manifest = pkg
	}

	var root *deps.Node
	if len(lock.Packages) > 0 {
		root = fromPackages(lock, manifest)
	} else {
		root = fromDependencies(lock, manifest)
	}
	if root.Name == "" {
		root.Name = manifest.Name
	}
	if root.Version == "" {
		root.Version = manifest.Version
	}
	return root, nil
}

// fromPackages builds the graph of a v2/v3 lock file.
func fromPackages(lock lockFile, manifest packageFile) *deps.Node {
	b := deps.NewBuilder(deps.TypeNPM)
	links := make(map[string]string)

	keys := sortedKeys(lock.Packages)
	for _, key := range keys {
		if key == "" {
			continue
		}
		pkg := lock.Packages[key]
		if pkg.Link {
			links[key] = pkg.Resolved
			continue
		}
		b.Add(key, installName(key, pkg.Name), pkg.Version)
	}

	lookup := func(key string) (string, bool) {
		if target, ok := links[key]; ok {
			key = target
		}
		_, ok := b.Node(key)
		return key, ok
	}

	for _, key := range keys {
		pkg := lock.Packages[key]
		if key == "" || pkg.Link {
			continue
		}
		for _, name := range pkg.installed() {
			if to, ok := resolve(lookup, key, name); ok {
				b.Link(key, to)
			}
		}
	}

	top, ok := lock.Packages[""]
	if !ok {
		top.packageFile = manifest
	}
	var direct []string
	for _, name := range sortedKeys(top.directDeps()) {
		if to, ok := resolve(lookup, "", name); ok {
			direct = append(direct, to)
		}
	}

	name, version := lock.Name, lock.Version
	if name == "" {
		name = top.Name
	}
	if version == "" {
		version = top.Version
	}
	return b.Project(name, version, direct...)
}

// fromDependencies builds the graph of a v1 lock file. Install keys use the
// same node_modules layout as v2 so both share one resolution rule.
func fromDependencies(lock lockFile, manifest packageFile) *deps.Node {
	b := deps.NewBuilder(deps.TypeNPM)
	requires := make(map[string][]string)

	var add func(parent string, tree map[string]lockDependency)
	add = func(parent string, tree map[string]lockDependency) {
		for _, name := range sortedKeys(tree) {
			dep := tree[name]
			key := modulePath(parent, name)
			b.Add(key, name, dep.Version)
			requires[key] = sortedKeys(dep.Requires)
			add(key, dep.Dependencies)
		}
	}
	add("", lock.Dependencies)

	lookup := func(key string) (string, bool) {
		_, ok := b.Node(key)
		return key, ok
	}
	for _, key := range sortedKeys(requires) {
		for _, name := range requires[key] {
			if to, ok := resolve(lookup, key, name); ok {
				b.Link(key, to)
			}
		}
	}

	var direct []string
	for _, name := range sortedKeys(manifest.directDeps()) {
		if to, ok := resolve(lookup, "", name); ok {
			direct = append(direct, to)
		}
	}
	return b.Project(lock.Name, lock.Version, direct...)
}

// resolve finds the install that a package at from gets for name, looking
// in from's own node_modules first and then in each enclosing directory.
func resolve(lookup func(string) (string, bool), from, name string) (string, bool) {
	dir := from
	for {
		if key, ok := lookup(modulePath(dir, name)); ok {
			return key, true
		}
		if dir == "" {
			return "", false
		}
		dir = parentDir(dir)
	}
}

func modulePath(dir, name string) string {
	if dir == "" {
		return modulesDir + "/" + name
	}
	return dir + "/" + modulesDir + "/" + name
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." || parent == "/" {
		return ""
	}
	return parent
}

// installName derives a package name from its install path, keeping the
// scope of scoped packages ("node_modules/@types/node" is "@types/node").
func installName(key, declared string) string {
	if declared != "" {
		return declared
	}
	if i := strings.LastIndex(key, modulesDir+"/"); i >= 0 {
		return key[i+len(modulesDir)+1:]
	}
	return path.Base(key)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
