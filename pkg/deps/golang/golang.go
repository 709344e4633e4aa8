// Package golang extracts Go module dependency graphs.
//
// go.mod is parsed with golang.org/x/mod/modfile. Direct requirements
// become children of the main module, with replace directives applied.
//
// When a [executable.Resolver] is configured and a go binary can be found on
// PATH, the backend runs "go mod graph" instead and records the full module
// requirement graph. The command only reads the local module cache; it never
// contacts a module proxy or downloads a toolchain. Failure of the command,
// including a cache miss, falls back to go.mod alone.
//
// The go binary is never taken from the scanned tree, so scanning a project
// does not execute files it contains.
package golang

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/modfile"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/executable"
)

const goMod = "go.mod"

// runFunc executes a tool in dir and returns its standard output.
type runFunc func(ctx context.Context, dir, tool string, args ...string) ([]byte, error)

// Backend implements [deps.Backend] for Go modules.
type Backend struct {
	// Resolver locates the go binary. Nil disables "go mod graph".
	Resolver *executable.Resolver
	Logger   *log.Logger

	run runFunc
}

// New returns the Go modules backend. Pass a nil resolver to read go.mod
// only.
func New(resolver *executable.Resolver, logger *log.Logger) *Backend {
	return &Backend{Resolver: resolver, Logger: logger, run: runTool}
}

func (b *Backend) Type() deps.Type { return deps.TypeGoMod }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, goMod), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := filepath.Join(path, goMod)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	mod, err := modfile.Parse(file, data, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", file)
	}
	if mod.Module == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: missing module directive", file)
	}

	if root, ok := b.graph(ctx, path, mod); ok {
		return []*deps.Node{root}, nil
	}
	return []*deps.Node{fromModFile(mod)}, nil
}

// graph runs "go mod graph" in path. It reports false when the command is
// disabled, unavailable or fails.
func (b *Backend) graph(ctx context.Context, path string, mod *modfile.File) (*deps.Node, bool) {
	if b.Resolver == nil {
		return nil, false
	}
	tool, ok := b.Resolver.Find("go", true, "")
	if !ok {
		b.logger().Debug("go executable not found; reading go.mod only", "path", path)
		return nil, false
	}
	run := b.run
	if run == nil {
		run = runTool
	}
	out, err := run(ctx, path, tool, "mod", "graph")
	if err != nil {
		b.logger().Warn("go mod graph failed; reading go.mod only", "path", path, "err", err)
		return nil, false
	}
	root, err := parseModGraph(out, mod.Module.Mod.Path)
	if err != nil {
		b.logger().Warn("unexpected go mod graph output; reading go.mod only", "path", path, "err", err)
		return nil, false
	}
	return root, true
}

func (b *Backend) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}

// fromModFile lists the direct requirements of mod.
func fromModFile(mod *modfile.File) *deps.Node {
	replaced := make(map[string]modfile.Replace)
	for _, r := range mod.Replace {
		replaced[r.Old.Path] = *r
	}

	root := deps.NewNode(deps.TypeGoMod, mod.Module.Mod.Path, mod.Module.Mod.Version)
	for _, req := range mod.Require {
		if req.Indirect {
			continue
		}
		path, version := req.Mod.Path, req.Mod.Version
		if r, ok := replaced[path]; ok && (r.Old.Version == "" || r.Old.Version == version) {
			// Local directory replacements carry no version.
			if r.New.Version != "" {
				path, version = r.New.Path, r.New.Version
			}
		}
		root.AddChild(deps.NewNode(deps.TypeGoMod, path, version))
	}
	return root
}

func runTool(ctx context.Context, dir, tool string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir
	cmd.Env = offlineEnv(os.Environ())
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %v: %w: %s", filepath.Base(tool), args, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

// offlineEnv restricts the go command to the local module cache. Later
// entries win over inherited ones.
func offlineEnv(env []string) []string {
	return append(env, "GOPROXY=off", "GOFLAGS=-mod=mod", "GOTOOLCHAIN=local")
}
