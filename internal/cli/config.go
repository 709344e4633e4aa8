package cli

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/packman/pkg/errors"
	"github.com/matzehuels/packman/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when --config is not
// given and the file exists.
const defaultConfigFile = "packman.toml"

// loadConfig decodes a TOML config file into a pipeline.Config. When
// explicit is false a missing file yields an empty config. Relative paths in
// the file are resolved against the file's directory.
func loadConfig(path string, explicit bool) (pipeline.Config, error) {
	var cfg pipeline.Config
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return pipeline.Config{}, nil
			}
			return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, perrors.New(perrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)
	cfg.OutputDir = relativeTo(base, cfg.OutputDir)
	for i, p := range cfg.SourcePaths {
		cfg.SourcePaths[i] = relativeTo(base, p)
	}
	return cfg, nil
}

func relativeTo(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
