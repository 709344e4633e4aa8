package ruby

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
)

type spec struct {
	name     string
	version  string
	requires []string
	local    bool
}

type lockfile struct {
	specs  []*spec
	direct []string
}

var (
	// "    rails (7.0.4)" or "      rack (~> 2.0)"
	entryPattern = regexp.MustCompile(`^([A-Za-z0-9._-]+)(?: \(([^)]*)\))?!?$`)
	// "  remote: ."
	remotePattern = regexp.MustCompile(`^remote:\s*(.*)$`)
)

func parseLockfile(r io.Reader) (*lockfile, error) {
	var (
		lock    lockfile
		section string
		remote  string
		current *spec
	)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		text := strings.TrimSpace(line)

		if indent == 0 {
			section, remote, current = text, "", nil
			continue
		}

		switch section {
		case "GEM", "GIT", "PATH":
			if indent == 2 {
				if m := remotePattern.FindStringSubmatch(text); m != nil {
					remote = m[1]
				}
				continue
			}
			m := entryPattern.FindStringSubmatch(text)
			if m == nil {
				return nil, fmt.Errorf("line %d: malformed spec %q", lineNo, text)
			}
			switch indent {
			case 4:
				current = &spec{name: m[1], version: m[2], local: section == "PATH" && remote == "."}
				lock.specs = append(lock.specs, current)
			case 6:
				if current == nil {
					return nil, fmt.Errorf("line %d: requirement %q outside a spec", lineNo, text)
				}
				current.requires = append(current.requires, m[1])
			}
		case "DEPENDENCIES":
			m := entryPattern.FindStringSubmatch(text)
			if m == nil {
				return nil, fmt.Errorf("line %d: malformed dependency %q", lineNo, text)
			}
			lock.direct = append(lock.direct, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &lock, nil
}

// graph links the specs by name. Platform variants of a gem
// ("nokogiri (1.15.0-x86_64-linux)") share a name; the first one wins.
func (l *lockfile) graph() *deps.Node {
	b := deps.NewBuilder(deps.TypeRubyGems)
	var project *spec
	for _, s := range l.specs {
		if s.local && project == nil {
			project = s
			continue
		}
		b.Add(s.name, s.name, s.version)
	}
	for _, s := range l.specs {
		if s == project {
			continue
		}
		for _, req := range s.requires {
			b.Link(s.name, req)
		}
	}

	if project == nil {
		return b.Project("", "", l.direct...)
	}
	// The project's own gemspec requirements count as direct dependencies.
	direct := append([]string{}, project.requires...)
	for _, d := range l.direct {
		if d != project.name {
			direct = append(direct, d)
		}
	}
	return b.Project(project.name, project.version, direct...)
}
