package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/packman/pkg/deps"
	"github.com/matzehuels/packman/pkg/deps/golang"
	"github.com/matzehuels/packman/pkg/deps/javascript"
	"github.com/matzehuels/packman/pkg/deps/php"
	"github.com/matzehuels/packman/pkg/deps/python"
	"github.com/matzehuels/packman/pkg/deps/ruby"
	"github.com/matzehuels/packman/pkg/deps/rust"
	"github.com/matzehuels/packman/pkg/executable"
)

// DefaultRegistry returns every built-in backend, in the order they run.
// The resolver is used by backends that shell out to a package manager;
// nil disables those code paths.
func DefaultRegistry(resolver *executable.Resolver, logger *log.Logger) *deps.Registry {
	return deps.NewRegistry(
		javascript.New(),
		python.New(),
		golang.New(resolver, logger),
		rust.New(),
		ruby.New(),
		php.New(),
	)
}
