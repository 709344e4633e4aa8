// Package pkg provides the libraries behind packman.
//
// # Overview
//
// packman inspects source directories, detects the package managers used to
// build the projects there and writes one Black Duck I/O (BDIO) document per
// project. The pkg directory is organized as follows:
//
//  1. [deps] - Package-manager types, the Backend interface and the backend
//     implementations under deps/<language>
//  2. [scan] - Runs backends across source paths, isolating failures
//  3. [bdio] - Transforms graphs into BDIO documents and writes them
//  4. [pipeline] - Configuration and the end-to-end export run
//  5. [executable] - Locates package-manager tools on disk
//  6. [render] - Optional DOT/SVG rendering of project graphs
//
// # Architecture
//
// The data flow of one run:
//
//	Config + source paths
//	         ↓
//	    [deps] registry (filter by type override)
//	         ↓
//	    [scan] package (Applicable, Extract per backend and path)
//	         ↓
//	    [bdio] package (override, sanitize, transform, serialize)
//	         ↓
//	    <TYPE>_<name>_<version>_bdio.jsonld
//
// # Quick Start
//
//	logger := log.New(os.Stderr)
//	runner := pipeline.NewRunner(pipeline.DefaultRegistry(executable.New(logger), logger), logger)
//	paths, err := runner.Run(ctx, pipeline.Config{SourcePaths: []string{"."}})
//
// [deps]: github.com/matzehuels/packman/pkg/deps
// [scan]: github.com/matzehuels/packman/pkg/scan
// [bdio]: github.com/matzehuels/packman/pkg/bdio
// [pipeline]: github.com/matzehuels/packman/pkg/pipeline
// [executable]: github.com/matzehuels/packman/pkg/executable
// [render]: github.com/matzehuels/packman/pkg/render
package pkg
