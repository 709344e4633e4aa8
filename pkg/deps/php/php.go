// Package php extracts Composer dependency graphs.
//
// composer.lock lists every installed package (including packages-dev)
// with its "require" map. composer.json supplies the project identity and
// its direct requirements. Platform requirements such as php, ext-* and
// lib-* are not packages and are skipped.
package php

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

const (
	composerLock = "composer.lock"
	composerJSON = "composer.json"
)

// Backend implements [deps.Backend] for Composer projects.
type Backend struct{}

// New returns the Packagist backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Type() deps.Type { return deps.TypePackagist }

func (b *Backend) Applicable(ctx context.Context, path string) (bool, error) {
	return deps.HasManifest(path, composerLock), nil
}

func (b *Backend) Extract(ctx context.Context, path string) ([]*deps.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lock lockFile
	if err := readJSON(filepath.Join(path, composerLock), &lock); err != nil {
		return nil, err
	}
	var manifest composerFile
	if err := readJSON(filepath.Join(path, composerJSON), &manifest); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	g := deps.NewBuilder(deps.TypePackagist)
	packages := append(slices.Clone(lock.Packages), lock.PackagesDev...)
	for _, p := range packages {
		g.Add(strings.ToLower(p.Name), p.Name, p.Version)
	}
	for _, p := range packages {
		for _, name := range requirements(p.Require) {
			g.Link(strings.ToLower(p.Name), name)
		}
	}

	direct := append(requirements(manifest.Require), requirements(manifest.RequireDev)...)
	name := manifest.Name
	if name == "" {
		name = filepath.Base(path)
	}
	return []*deps.Node{g.Project(name, manifest.Version, direct...)}, nil
}

type lockFile struct {
	Packages    []lockPackage `json:"packages"`
	PackagesDev []lockPackage `json:"packages-dev"`
}

type lockPackage struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Require map[string]string `json:"require"`
}

type composerFile struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// requirements returns the sorted, lower-cased package names of a require
// map, without platform packages.
func requirements(require map[string]string) []string {
	var names []string
	for name := range require {
		if !isPlatform(name) {
			names = append(names, strings.ToLower(name))
		}
	}
	slices.Sort(names)
	return names
}

// isPlatform reports whether name is a Composer platform package. Real
// packages always have a vendor prefix.
func isPlatform(name string) bool {
	return !strings.Contains(name, "/")
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return nil
}
