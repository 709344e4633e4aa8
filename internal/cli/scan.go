package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packman/pkg/buildinfo"
	"github.com/matzehuels/packman/pkg/executable"
	"github.com/matzehuels/packman/pkg/pipeline"
	"github.com/matzehuels/packman/pkg/render/nodelink"
)

// scanFlags holds the command-line flags of the scan command.
type scanFlags struct {
	config         string
	typeOverride   string
	strictTypes    bool
	projectName    string
	projectVersion string
	output         string
	sources        []string
	timeout        time.Duration
	graphs         []string
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Detect package managers and export one BDIO document per project",
		Long: `Scan inspects each source path with every selected package-manager backend
and writes one Black Duck I/O document per detected project.

Source paths are given as arguments or with --source. Without either, the
source_paths of the config file are used, falling back to the current
directory.`,
		Example: `  # Scan the current directory
  packman scan

  # Only npm and Cargo projects, written to ./bom
  packman scan --type-override NPM,CARGO -o bom ./web ./engine

  # Override the project identity and render SVG graphs
  packman scan --project-name acme --project-version 2.0 --graphs svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runScan(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "TOML config file (default "+defaultConfigFile+" if present)")
	f.StringVar(&flags.typeOverride, "type-override", "", "comma-separated package-manager types to run (e.g. NPM,CARGO)")
	f.BoolVar(&flags.strictTypes, "strict-types", false, "fail on unknown types in --type-override instead of skipping them")
	f.StringVar(&flags.projectName, "project-name", "", "replace every project's name")
	f.StringVar(&flags.projectVersion, "project-version", "", "replace every project's version")
	f.StringVarP(&flags.output, "output", "o", "", "output directory (default "+pipeline.DefaultOutputDir+")")
	f.StringArrayVar(&flags.sources, "source", nil, "source directory to scan (repeatable)")
	f.DurationVar(&flags.timeout, "timeout", 0, "per-backend timeout (0 disables)")
	f.StringSliceVar(&flags.graphs, "graphs", nil, "also render a dependency graph per project: "+strings.Join(nodelink.Formats, ", "))

	return cmd
}

// resolve merges the config file with the flags that were set explicitly.
func (f *scanFlags) resolve(cmd *cobra.Command, args []string) (pipeline.Config, error) {
	path, explicit := f.config, true
	if path == "" {
		path, explicit = defaultConfigFile, false
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return cfg, err
	}

	set := cmd.Flags().Changed
	if set("type-override") {
		cfg.TypeOverride = f.typeOverride
	}
	if set("strict-types") {
		cfg.StrictTypes = f.strictTypes
	}
	if set("project-name") {
		cfg.ProjectName = f.projectName
	}
	if set("project-version") {
		cfg.ProjectVersion = f.projectVersion
	}
	if set("output") {
		cfg.OutputDir = f.output
	}
	if set("timeout") {
		cfg.BackendTimeout = f.timeout
	}
	if set("graphs") {
		cfg.Graphs = f.graphs
	}

	if sources := append(append([]string(nil), f.sources...), args...); len(sources) > 0 {
		cfg.SourcePaths = sources
	}
	if len(cfg.SourcePaths) == 0 {
		cfg.SourcePaths = []string{"."}
	}
	return cfg, nil
}

// runScan executes the export and prints a summary of the produced files.
func (c *CLI) runScan(cmd *cobra.Command, cfg pipeline.Config) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)

	stats, reset := collectStats()
	defer reset()

	runner := pipeline.NewRunner(pipeline.DefaultRegistry(executable.New(logger), logger), logger)
	runner.Creator = buildinfo.Tool()

	prog := newProgress(logger)
	paths, err := runner.Run(ctx, cfg)
	if err != nil {
		if len(paths) > 0 {
			printSummary(c.out(), paths, stats)
		}
		return err
	}
	printSummary(c.out(), paths, stats)
	prog.done(fmt.Sprintf("Exported %d BDIO documents", len(paths)))
	return nil
}

// printSummary lists the produced files followed by the failed backends.
func printSummary(w io.Writer, paths []string, stats *scanStats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	if len(paths) == 0 {
		printWarning(w, "No BDIO documents written")
	} else {
		printSuccess(w, "Exported %d BDIO document(s)", len(paths))
		for _, p := range paths {
			printFile(w, p)
		}
		printStats(w, stats.nodes, stats.edges, stats.replaced)
	}
	for _, f := range stats.failures {
		printError(w, "%s failed on %s: %v", f.backend, f.path, f.err)
	}
}
