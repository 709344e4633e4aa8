// Package executable locates package-manager tools on the host.
//
// Backends that shell out (for example to "go mod graph") use a [Resolver]
// to find the tool: first inside the project tree, then optionally on the
// system PATH.
package executable

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultMaxDepth bounds how far below a search root Find descends.
const DefaultMaxDepth = 2

// skipDirs are never descended into while searching a tree.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Resolver finds executables. The zero value uses the host OS and PATH.
type Resolver struct {
	// GOOS selects the naming convention; empty means runtime.GOOS.
	GOOS string
	// Getenv reads environment variables; nil means os.Getenv.
	Getenv func(string) string
	// MaxDepth bounds the directory search; zero means DefaultMaxDepth.
	MaxDepth int
	Logger   *log.Logger
}

// New returns a resolver for the host system. Unsupported operating systems
// are treated like Linux, with a warning.
func New(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	r := &Resolver{Logger: logger}
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		logger.Debug("detected operating system", "os", runtime.GOOS)
	default:
		logger.Warn("operating system not supported, assuming linux", "os", runtime.GOOS)
		r.GOOS = "linux"
	}
	return r
}

// Candidates returns the file names tried for tool, in order.
func (r *Resolver) Candidates(tool string) []string {
	if r.goos() == "windows" {
		return []string{tool + ".cmd", tool + ".bat", tool + ".exe"}
	}
	return []string{tool}
}

// Find returns the first executable file for tool found below dir, or, if
// none and searchSystemPath is set, directly in one of the directories
// listed in PATH.
// It reports false when nothing matches.
func (r *Resolver) Find(tool string, searchSystemPath bool, dir string) (string, bool) {
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			if p, ok := r.findIn(abs, tool, r.maxDepth()); ok {
				return p, true
			}
		}
	}
	if !searchSystemPath {
		return "", false
	}
	for _, entry := range r.pathList() {
		if entry == "" {
			continue
		}
		if p, ok := r.findIn(entry, tool, 0); ok {
			return p, true
		}
	}
	r.logger().Debug("executable not found", "tool", tool, "dir", dir)
	return "", false
}

// findIn searches root and its subdirectories up to maxDepth, checking all
// candidate names in a directory before descending.
func (r *Resolver) findIn(root, tool string, maxDepth int) (string, bool) {
	candidates := r.Candidates(tool)

	dirs := []string{root}
	for depth := 0; depth <= maxDepth && len(dirs) > 0; depth++ {
		var next []string
		for _, d := range dirs {
			for _, name := range candidates {
				p := filepath.Join(d, name)
				if r.isExecutable(p) {
					return p, true
				}
			}
			if depth == maxDepth {
				continue
			}
			entries, err := os.ReadDir(d)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() && !skipDirs[e.Name()] {
					next = append(next, filepath.Join(d, e.Name()))
				}
			}
		}
		dirs = next
	}
	return "", false
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return r.MaxDepth
}

func (r *Resolver) isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if r.goos() == "windows" {
		ext := strings.ToLower(filepath.Ext(path))
		return ext == ".cmd" || ext == ".bat" || ext == ".exe"
	}
	return info.Mode().Perm()&fs.FileMode(0o111) != 0
}

func (r *Resolver) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

// pathList splits PATH using the list separator of the resolver's OS.
func (r *Resolver) pathList() []string {
	path := r.getenv("PATH")
	if path == "" {
		return nil
	}
	sep := ":"
	if r.goos() == "windows" {
		sep = ";"
	}
	return strings.Split(path, sep)
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
