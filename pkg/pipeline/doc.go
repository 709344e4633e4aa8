// Package pipeline runs a complete packman export.
//
// A [Runner] takes an explicit [Config] and performs, in order:
//
//  1. Validate the configuration
//  2. Create the output directory
//  3. Parse the package-manager type override and filter the registry
//  4. Scan every source path with every selected backend
//  5. Write one BDIO document per extracted project
//  6. Optionally render a dependency graph next to each document
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.DefaultRegistry(nil, logger), logger)
//	paths, err := runner.Run(ctx, pipeline.Config{
//	    SourcePaths: []string{"."},
//	    OutputDir:   "bdio",
//	})
//
// Backend failures are logged and skipped. Output failures abort the run
// with an [errors.ErrCodeOutput] error; the paths written before the
// failure are still returned.
//
// [errors.ErrCodeOutput]: github.com/matzehuels/packman/pkg/errors
package pipeline
