package module

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"

	"github.com/matzehuels/modgraph/pkg/cpg"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module/resolve"
)

// Config controls how files are grouped into modules.
type Config struct {
	Level        Level
	IncludeTests bool

	// ExcludePatterns drop every file whose path contains one of them.
	// Patterns with glob metacharacters (*?[{) additionally match when the
	// glob matches the whole path; "**" crosses directories, "*" does not.
	ExcludePatterns []string
}

// DefaultConfig groups by directory, skips tests and excludes nothing.
func DefaultConfig() Config {
	return Config{Level: Directory{}}
}

// Option configures an [Aggregator] or a [Calculator].
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used for debug summaries.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Aggregator groups eligible file nodes into modules.
type Aggregator struct {
	logger *log.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	o := buildOptions(opts)
	return &Aggregator{logger: o.logger}
}

// Aggregate groups the eligible FILE nodes of g into modules.
//
// A file is eligible when it is a FILE node from source code (domain or
// label "code") with a file path, matches no exclude pattern, and is not a test artifact unless
// cfg.IncludeTests is set. Modules are returned in the order their first
// file appears in g. No eligible files yields an empty slice.
//
// The configuration is validated before any module is built: a missing or
// unusable level fails with INVALID_LEVEL and a malformed glob with
// INVALID_CONFIG.
func (a *Aggregator) Aggregate(g cpg.Graph, rootPath string, cfg Config) ([]*Module, error) {
	if err := checkLevel(cfg.Level); err != nil {
		return nil, err
	}
	exclude, err := compileExcludes(cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	root := resolve.Normalize(rootPath)

	var (
		modules []*Module
		byPath  = make(map[string]*Module)
		skipped int
	)
	for _, n := range g.Nodes() {
		if !eligible(n, cfg.IncludeTests) {
			continue
		}
		fp := resolve.Normalize(n.Metadata.FilePath)
		if exclude.match(n.Metadata.FilePath) || exclude.match(fp) {
			skipped++
			continue
		}

		mp := modulePath(cfg.Level, fp, root)
		m, ok := byPath[mp]
		if !ok {
			m = newModule(mp)
			byPath[mp] = m
			modules = append(modules, m)
		}
		m.Files = append(m.Files, n.ID)
		m.Metrics.FileCount++
		m.Metrics.TotalLines += n.Metadata.Lines()
	}

	a.logger.Debug("aggregated modules",
		"level", cfg.Level,
		"modules", len(modules),
		"excluded", skipped)
	if modules == nil {
		modules = []*Module{}
	}
	return modules, nil
}

// Aggregate groups g with a default Aggregator.
func Aggregate(g cpg.Graph, rootPath string, cfg Config) ([]*Module, error) {
	return NewAggregator().Aggregate(g, rootPath, cfg)
}

func eligible(n cpg.Node, includeTests bool) bool {
	if !n.IsFile() || !n.IsCode() || n.Metadata.FilePath == "" {
		return false
	}
	return includeTests || !n.IsTest()
}

type excludeSet struct {
	substrings []string
	globs      []glob.Glob
}

func compileExcludes(patterns []string) (excludeSet, error) {
	var s excludeSet
	for _, p := range patterns {
		s.substrings = append(s.substrings, p)
		if !strings.ContainsAny(p, "*?[{") {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return excludeSet{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "exclude pattern %q", p)
		}
		s.globs = append(s.globs, g)
	}
	return s, nil
}

func (s excludeSet) match(filePath string) bool {
	for _, sub := range s.substrings {
		if strings.Contains(filePath, sub) {
			return true
		}
	}
	for _, g := range s.globs {
		if g.Match(filePath) {
			return true
		}
	}
	return false
}
