package python

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

// requirementLine splits "name[extras] spec ; marker" into name and spec.
var requirementLine = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[[^\]]*\])?\s*([^;]*)`)

type requirement struct {
	name    string
	version string
}

func parseRequirements(path string, p project) (*deps.Node, error) {
	reqs, err := readRequirements(path, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	root := deps.NewNode(deps.TypePIP, p.Name, p.Version)
	seen := make(map[string]bool)
	for _, r := range reqs {
		key := normalize(r.name)
		if seen[key] {
			continue
		}
		seen[key] = true
		root.AddChild(deps.NewNode(deps.TypePIP, r.name, r.version))
	}
	return root, nil
}

// readRequirements reads path and the files it includes with -r. visited
// guards against include cycles.
func readRequirements(path string, visited map[string]bool) ([]requirement, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if visited[abs] {
		return nil, nil
	}
	visited[abs] = true

	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reqs []requirement
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || line[0] == '#' {
			continue
		}
		if include, ok := includeTarget(line); ok {
			nested, err := readRequirements(filepath.Join(filepath.Dir(abs), include), visited)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "%s: include %s", path, include)
			}
			reqs = append(reqs, nested...)
			continue
		}
		if line[0] == '-' || strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		if m := requirementLine.FindStringSubmatch(line); m != nil {
			reqs = append(reqs, requirement{name: m[1], version: pinnedVersion(m[2])})
		}
	}
	return reqs, scanner.Err()
}

func includeTarget(line string) (string, bool) {
	for _, prefix := range []string{"-r", "--requirement"} {
		if rest, ok := strings.CutPrefix(line, prefix); ok && (rest == "" || rest[0] == ' ' || rest[0] == '=') {
			target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "="))
			return target, target != ""
		}
	}
	return "", false
}

// pinnedVersion returns the exact version of an "==" or "===" pin and the
// raw specifier otherwise.
func pinnedVersion(spec string) string {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "==") && !strings.Contains(spec, ",") {
		return strings.TrimSpace(strings.TrimLeft(spec, "="))
	}
	return spec
}
