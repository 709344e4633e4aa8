package golang

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
)

// parseModGraph reads the output of "go mod graph". Each line holds one
// requirement edge "from to", where both ends are "path@version" except the
// main module, which appears as a bare path.
func parseModGraph(data []byte, main string) (*deps.Node, error) {
	b := deps.NewBuilder(deps.TypeGoMod)
	var direct []string
	var edges [][2]string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 fields, got %d", line, len(fields))
		}
		from, to := fields[0], fields[1]
		if to == main || strings.HasPrefix(to, main+"@") || isToolchain(to) {
			continue
		}
		addModule(b, to)
		if from == main {
			direct = append(direct, to)
			continue
		}
		addModule(b, from)
		edges = append(edges, [2]string{from, to})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, e := range edges {
		b.Link(e[0], e[1])
	}
	return b.Project(main, "", direct...), nil
}

// isToolchain reports whether key is one of the "go" and "toolchain"
// pseudo-modules that go mod graph prints for version requirements.
func isToolchain(key string) bool {
	path, _, _ := strings.Cut(key, "@")
	return path == "go" || path == "toolchain"
}

func addModule(b *deps.Builder, key string) {
	path, version, _ := strings.Cut(key, "@")
	b.Add(key, path, version)
}
