package php

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/errors"
)

const lock = `{
  "content-hash": "abc",
  "packages": [
    {
      "name": "monolog/monolog",
      "version": "3.5.0",
      "require": {"php": ">=8.1", "psr/log": "^2.0 || ^3.0"}
    },
    {"name": "psr/log", "version": "3.0.0", "require": {"php": ">=8.0"}},
    {
      "name": "symfony/console",
      "version": "v7.0.1",
      "require": {"ext-mbstring": "*", "Psr/Log": "^3"}
    }
  ],
  "packages-dev": [
    {"name": "phpunit/phpunit", "version": "10.5.0"}
  ]
}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func edges(root *deps.Node) string {
	var out []string
	deps.Walk(root, func(n *deps.Node, _ int) bool {
		for _, c := range n.Children {
			out = append(out, n.Name+"@"+n.Version+" -> "+c.Name+"@"+c.Version)
		}
		return true
	})
	return strings.Join(out, "\n")
}

func TestApplicable(t *testing.T) {
	if ok, _ := New().Applicable(context.Background(), writeFiles(t, map[string]string{"composer.lock": lock})); !ok {
		t.Error("Applicable() = false with composer.lock")
	}
	if ok, _ := New().Applicable(context.Background(), writeFiles(t, map[string]string{"composer.json": "{}"})); ok {
		t.Error("Applicable() = true with only composer.json")
	}
}

func TestExtract(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"composer.lock": lock,
		"composer.json": `{
  "name": "acme/shop",
  "version": "1.4.0",
  "require": {"php": "^8.2", "monolog/monolog": "^3.5", "symfony/console": "^7.0"},
  "require-dev": {"phpunit/phpunit": "^10.5"}
}`,
	})

	projects, err := New().Extract(context.Background(), dir)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("Extract() returned %d projects, want 1", len(projects))
	}
	root := projects[0]
	if root.Type != deps.TypePackagist || root.Name != "acme/shop" || root.Version != "1.4.0" {
		t.Errorf("root = %s@%s (%s)", root.Name, root.Version, root.Type)
	}
	want := strings.Join([]string{
		"acme/shop@1.4.0 -> monolog/monolog@3.5.0",
		"acme/shop@1.4.0 -> symfony/console@v7.0.1",
		"acme/shop@1.4.0 -> phpunit/phpunit@10.5.0",
		"monolog/monolog@3.5.0 -> psr/log@3.0.0",
		"symfony/console@v7.0.1 -> psr/log@3.0.0",
	}, "\n")
	if got := edges(root); got != want {
		t.Errorf("edges =\n%s\nwant\n%s", got, want)
	}
}

func TestExtractWithoutComposerJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"composer.lock": lock})

	projects, err := New().Extract(context.Background(), dir)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	root := projects[0]
	if root.Name != filepath.Base(dir) {
		t.Errorf("root name = %q, want directory name", root.Name)
	}
	var direct []string
	for _, c := range root.Children {
		direct = append(direct, c.Name)
	}
	if got := strings.Join(direct, ","); got != "monolog/monolog,symfony/console,phpunit/phpunit" {
		t.Errorf("direct = %s", got)
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := map[string]map[string]string{
		"lock":     {"composer.lock": "{"},
		"manifest": {"composer.lock": lock, "composer.json": "[1,"},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New().Extract(context.Background(), writeFiles(t, files))
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("Extract() error = %v, want %s", err, errors.ErrCodeInvalidManifest)
			}
		})
	}
}

func TestIsPlatform(t *testing.T) {
	for name, want := range map[string]bool{
		"php":                 true,
		"ext-json":            true,
		"lib-icu":             true,
		"composer-plugin-api": true,
		"psr/log":             false,
	} {
		if got := isPlatform(name); got != want {
			t.Errorf("isPlatform(%q) = %v, want %v", name, got, want)
		}
	}
}
