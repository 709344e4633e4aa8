package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/render/nodelink"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "."

// Config holds everything a run needs. The toml tags define the config
// file keys.
type Config struct {
	// TypeOverride restricts the scan to a comma-separated list of
	// package-manager types. Blank means all.
	TypeOverride string `toml:"type_override"`
	// StrictTypes rejects unknown entries in TypeOverride instead of
	// skipping them with a warning.
	StrictTypes bool `toml:"strict_types"`

	// ProjectName and ProjectVersion replace every project's identity
	// when non-blank.
	ProjectName    string `toml:"project_name"`
	ProjectVersion string `toml:"project_version"`

	OutputDir   string   `toml:"output_dir"`
	SourcePaths []string `toml:"source_paths"`

	// BackendTimeout bounds each backend invocation. Zero means no limit.
	BackendTimeout time.Duration `toml:"backend_timeout"`

	// Graphs lists the graph formats written next to each BDIO file.
	Graphs []string `toml:"graphs"`
}

// WithDefaults returns a copy of c with empty fields defaulted.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = DefaultOutputDir
	}
	c.SourcePaths = slices.Clone(c.SourcePaths)
	c.Graphs = slices.Clone(c.Graphs)
	return c
}

// Validate checks the configuration. All failures carry
// [errors.ErrCodeInvalidConfig].
func (c Config) Validate() error {
	if len(c.SourcePaths) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no source paths given")
	}
	for _, p := range c.SourcePaths {
		if err := errors.ValidatePath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source path %q", p)
		}
	}
	if err := errors.ValidatePath(c.OutputDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output directory")
	}
	if c.BackendTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "backend timeout must not be negative: %s", c.BackendTimeout)
	}
	for _, f := range c.Graphs {
		if !nodelink.ValidFormat(f) {
			return errors.New(errors.ErrCodeInvalidConfig, "unsupported graph format %q (available: %s)",
				f, strings.Join(nodelink.Formats, ", "))
		}
	}
	if c.StrictTypes {
		if err := errors.ValidateTypeOverride(c.TypeOverride); err != nil {
			return err
		}
	}
	return nil
}
