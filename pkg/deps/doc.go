// Package deps defines package-manager backends and the dependency graphs
// they extract from a source tree.
//
// # Overview
//
// A [Backend] knows how to recognize one kind of package manager in a
// directory and how to turn its manifests into a tree of [Node] values.
// Every backend reports a [Type] from a closed enumeration (NPM, PIP,
// GO_MOD, CARGO, RUBYGEMS, PACKAGIST); the type names the output files and
// selects the external-identifier forge in exported BOMs.
//
// # Registry
//
// Backends are registered once, in order, into a [Registry]:
//
//	reg := deps.NewRegistry(
//	    javascript.New(),
//	    python.New(),
//	    golang.New(nil),
//	)
//
// A type override such as "NPM, CARGO" narrows the set to run:
//
//	types := deps.ParseTypes("NPM, CARGO", logger)
//	backends := reg.Filter(types)
//
// Unknown entries are logged and skipped. If nothing valid remains the
// filter is a no-op and every registered backend runs.
//
// # Graphs
//
// [Node] values form a tree where a node may be shared between parents.
// Cycles are not forbidden by the model; use [Walk] to traverse a graph
// with cycle protection.
//
// # Supported Package Managers
//
// Each package manager has a subpackage with its backend:
//
//   - [javascript]: package-lock.json, package.json
//   - [python]: poetry.lock, requirements.txt
//   - [golang]: go.mod
//   - [rust]: Cargo.lock
//   - [ruby]: Gemfile.lock
//   - [php]: composer.lock
//
// [javascript]: github.com/matzehuels/packman/pkg/deps/javascript
// [python]: github.com/matzehuels/packman/pkg/deps/python
// [golang]: github.com/matzehuels/packman/pkg/deps/golang
// [rust]: github.com/matzehuels/packman/pkg/deps/rust
// [ruby]: github.com/matzehuels/packman/pkg/deps/ruby
// [php]: github.com/matzehuels/packman/pkg/deps/php
package deps
