// Package config loads modgraph settings from files and the environment.
//
// A config file is TOML or YAML, chosen by extension:
//
//	root = "/repo"
//	level = "package"
//	include_tests = false
//	exclude = ["node_modules", "**/*.gen.ts"]
//	package_markers = ["package.json", "tsconfig.json"]
//
// [LoadEnv] then applies MODGRAPH_* variables, reading a .env file in the
// working directory first when one exists. Command-line flags are applied
// last by the CLI.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module"
)

// Environment variables read by [LoadEnv].
const (
	EnvRoot         = "MODGRAPH_ROOT"
	EnvLevel        = "MODGRAPH_LEVEL"
	EnvIncludeTests = "MODGRAPH_INCLUDE_TESTS"
	EnvExclude      = "MODGRAPH_EXCLUDE"
)

// File is the on-disk configuration.
type File struct {
	Root           string   `toml:"root" yaml:"root"`
	Level          string   `toml:"level" yaml:"level"`
	IncludeTests   bool     `toml:"include_tests" yaml:"include_tests"`
	Exclude        []string `toml:"exclude" yaml:"exclude"`
	PackageMarkers []string `toml:"package_markers" yaml:"package_markers"`
}

// Default returns the configuration used when nothing is set: directory
// level, tests excluded, no patterns.
func Default() File {
	return File{Level: module.LevelDirectory}
}

// Load reads the config file at path on top of [Default]. Files ending in
// .yaml or .yml are YAML; everything else is TOML. Unknown keys are
// rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	f := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &f)
	default:
		err = decodeTOML(data, &f)
	}
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return f, nil
}

func decodeTOML(data []byte, f *File) error {
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// DotEnvFile is the environment file LoadEnv reads when present.
const DotEnvFile = ".env"

// LoadEnv loads .env from the working directory if present, then applies
// the MODGRAPH_* variables to f. Unset variables leave f unchanged. A
// malformed .env is an INVALID_CONFIG error.
func (f *File) LoadEnv() error {
	return f.loadEnvFrom(DotEnvFile)
}

func (f *File) loadEnvFrom(dotenv string) error {
	if err := godotenv.Load(dotenv); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", dotenv)
	}
	return f.applyEnv(os.LookupEnv)
}

func (f *File) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRoot); ok {
		f.Root = v
	}
	if v, ok := lookup(EnvLevel); ok && v != "" {
		f.Level = v
	}
	if v, ok := lookup(EnvIncludeTests); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a boolean", EnvIncludeTests, v)
		}
		f.IncludeTests = b
	}
	if v, ok := lookup(EnvExclude); ok {
		f.Exclude = SplitList(v)
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Aggregation converts f into an aggregation config.
//
// The level is parsed with [module.ParseLevel]. Package markers apply only
// to the package level and must be plain filenames. Exclude patterns must
// be non-blank.
func (f File) Aggregation() (module.Config, error) {
	level, err := module.ParseLevel(f.Level)
	if err != nil {
		return module.Config{}, err
	}
	if len(f.PackageMarkers) > 0 {
		pkg, ok := level.(module.Package)
		if !ok {
			return module.Config{}, errors.New(errors.ErrCodeInvalidConfig,
				"package_markers requires level %q, got %q", module.LevelPackage, level)
		}
		for _, m := range f.PackageMarkers {
			if err := errors.ValidateMarkerFilename(m); err != nil {
				return module.Config{}, err
			}
		}
		pkg.Markers = append([]string(nil), f.PackageMarkers...)
		level = pkg
	}
	for _, p := range f.Exclude {
		if err := errors.ValidateExcludePattern(p); err != nil {
			return module.Config{}, err
		}
	}
	return module.Config{
		Level:           level,
		IncludeTests:    f.IncludeTests,
		ExcludePatterns: append([]string(nil), f.Exclude...),
	}, nil
}
