package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "modgraph.toml",
			content: `root = "/repo"
level = "package"
include_tests = true
exclude = ["node_modules", "**/*.gen.ts"]
package_markers = ["package.json", "deno.json"]
`,
		},
		{
			name: "yaml",
			file: "modgraph.yaml",
			content: `root: /repo
level: package
include_tests: true
exclude:
  - node_modules
  - "**/*.gen.ts"
package_markers: [package.json, deno.json]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if f.Root != "/repo" || f.Level != "package" || !f.IncludeTests {
				t.Errorf("Load() = %+v", f)
			}
			if !slices.Equal(f.Exclude, []string{"node_modules", "**/*.gen.ts"}) {
				t.Errorf("Exclude = %v", f.Exclude)
			}
			if !slices.Equal(f.PackageMarkers, []string{"package.json", "deno.json"}) {
				t.Errorf("PackageMarkers = %v", f.PackageMarkers)
			}
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	f, err := Load(writeFile(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Level != module.LevelDirectory {
		t.Errorf("Level = %q, want %q", f.Level, module.LevelDirectory)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.Code
	}{
		{"bad toml", "c.toml", "level = ", errors.ErrCodeInvalidConfig},
		{"unknown toml key", "c.toml", `levle = "package"`, errors.ErrCodeInvalidConfig},
		{"bad yaml", "c.yaml", "level: [", errors.ErrCodeInvalidConfig},
		{"unknown yaml key", "c.yaml", "levle: package", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Load() error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRoot:         "/work",
		EnvLevel:        "top-level",
		EnvIncludeTests: "true",
		EnvExclude:      " dist , ,vendor",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	f := Default()
	if err := f.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if f.Root != "/work" || f.Level != "top-level" || !f.IncludeTests {
		t.Errorf("applyEnv() = %+v", f)
	}
	if !slices.Equal(f.Exclude, []string{"dist", "vendor"}) {
		t.Errorf("Exclude = %v, want [dist vendor]", f.Exclude)
	}

	env[EnvIncludeTests] = "sometimes"
	if err := f.applyEnv(lookup); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("applyEnv(bad bool) error = %v, want INVALID_CONFIG", err)
	}
}

func TestApplyEnvUnset(t *testing.T) {
	f := File{Root: "/repo", Level: "package", Exclude: []string{"x"}}
	none := func(string) (string, bool) { return "", false }
	if err := f.applyEnv(none); err != nil {
		t.Fatal(err)
	}
	if f.Root != "/repo" || f.Level != "package" || len(f.Exclude) != 1 {
		t.Errorf("applyEnv() changed f: %+v", f)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvLevel, "package")
	t.Setenv(EnvExclude, "a,b")
	f := Default()
	if err := f.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if f.Level != "package" || len(f.Exclude) != 2 {
		t.Errorf("LoadEnv() = %+v", f)
	}
}

func TestAggregation(t *testing.T) {
	cfg, err := File{Level: "package", PackageMarkers: []string{"deno.json"}, Exclude: []string{"dist"}}.Aggregation()
	if err != nil {
		t.Fatalf("Aggregation() error: %v", err)
	}
	pkg, ok := cfg.Level.(module.Package)
	if !ok || !slices.Equal(pkg.Markers, []string{"deno.json"}) {
		t.Errorf("Level = %#v, want Package with deno.json", cfg.Level)
	}
	if !slices.Equal(cfg.ExcludePatterns, []string{"dist"}) {
		t.Errorf("ExcludePatterns = %v", cfg.ExcludePatterns)
	}

	cfg, err = Default().Aggregation()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Level.(module.Directory); !ok || cfg.IncludeTests {
		t.Errorf("Default().Aggregation() = %#v", cfg)
	}
}

func TestAggregationErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     File
		wantCode errors.Code
	}{
		{"unknown level", File{Level: "flat"}, errors.ErrCodeInvalidLevel},
		{"custom level", File{Level: "custom"}, errors.ErrCodeInvalidLevel},
		{"markers without package", File{Level: "directory", PackageMarkers: []string{"package.json"}}, errors.ErrCodeInvalidConfig},
		{"marker with separator", File{Level: "package", PackageMarkers: []string{"a/package.json"}}, errors.ErrCodeInvalidConfig},
		{"blank exclude", File{Level: "directory", Exclude: []string{"  "}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.file.Aggregation()
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Aggregation() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadExamples(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"../../examples/modgraph.toml", module.LevelTopLevel},
		{"../../examples/modgraph.yaml", module.LevelPackage},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			f, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			cfg, err := f.Aggregation()
			if err != nil {
				t.Fatalf("Aggregation() error: %v", err)
			}
			if cfg.Level.String() != tt.want {
				t.Errorf("Level = %v, want %s", cfg.Level, tt.want)
			}
		})
	}
}

func TestLoadEnvDotEnvFile(t *testing.T) {
	t.Setenv(EnvLevel, "")
	os.Unsetenv(EnvLevel)
	path := writeFile(t, ".env", "MODGRAPH_LEVEL=package\n")

	f := Default()
	if err := f.loadEnvFrom(path); err != nil {
		t.Fatalf("loadEnvFrom() error: %v", err)
	}
	if f.Level != "package" {
		t.Errorf("Level = %q, want package", f.Level)
	}
}

func TestLoadEnvDotEnvErrors(t *testing.T) {
	f := Default()
	if err := f.loadEnvFrom(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("loadEnvFrom(missing) error = %v, want nil", err)
	}

	bad := writeFile(t, ".env", "MODGRAPH_LEVEL='unterminated\n")
	if err := f.loadEnvFrom(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadEnvFrom(malformed) error = %v, want INVALID_CONFIG", err)
	}
}
