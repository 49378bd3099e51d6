package module

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module/resolve"
)

// Level names, as accepted by [ParseLevel] and used in configuration files.
const (
	LevelDirectory = "directory"
	LevelTopLevel  = "top-level"
	LevelPackage   = "package"
	LevelCustom    = "custom"
)

// DefaultPackageMarker is the file that marks a package boundary when a
// [Package] level has no explicit markers.
const DefaultPackageMarker = "package.json"

// Level is the aggregation policy deciding which files share a module.
//
// Level is closed: the only implementations are [Directory], [TopLevel],
// [Package] and [Custom]. Each variant has exactly one grouping rule, chosen
// by an exhaustive switch in the aggregator.
type Level interface {
	String() string
	level()
}

// Directory groups files by their containing directory.
type Directory struct{}

// TopLevel groups files by the first two directory segments below the root
// path: /root/src/domain/entities/x.ts belongs to /root/src/domain.
type TopLevel struct{}

// StatFunc reports file information for a path. It has the signature of
// [os.Stat].
type StatFunc func(name string) (fs.FileInfo, error)

// Package groups files by the nearest enclosing directory that contains a
// marker file. The walk stops before the root path; files without a marked
// ancestor fall back to their own directory.
//
// Any Stat error counts as "marker absent".
type Package struct {
	Markers []string // defaults to package.json
	Stat    StatFunc // defaults to os.Stat
}

// Custom groups files with a caller-supplied function. Group receives the
// normalized file path and root path and returns a module path; an empty
// result falls back to the file's directory.
type Custom struct {
	Name  string
	Group func(filePath, rootPath string) string
}

func (Directory) level() {}
func (TopLevel) level()  {}
func (Package) level()   {}
func (Custom) level()    {}

func (Directory) String() string { return LevelDirectory }
func (TopLevel) String() string  { return LevelTopLevel }
func (Package) String() string   { return LevelPackage }

func (c Custom) String() string {
	if c.Name != "" {
		return LevelCustom + ":" + c.Name
	}
	return LevelCustom
}

// ParseLevel maps a configuration value to a Level.
//
// "custom" is rejected because it needs a grouping function that cannot be
// expressed as a string; build a [Custom] value in code instead.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LevelDirectory:
		return Directory{}, nil
	case LevelTopLevel, "toplevel", "top_level":
		return TopLevel{}, nil
	case LevelPackage:
		return Package{}, nil
	case LevelCustom:
		return nil, errors.New(errors.ErrCodeInvalidLevel, "level %q requires a grouping function", s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidLevel, "unknown aggregation level %q", s)
	}
}

// checkLevel fails for a nil level or a Custom level without a function.
func checkLevel(l Level) error {
	switch l := l.(type) {
	case Directory, TopLevel, Package:
		return nil
	case Custom:
		if l.Group == nil {
			return errors.New(errors.ErrCodeInvalidLevel, "custom level %q has no grouping function", l.Name)
		}
		return nil
	case nil:
		return errors.New(errors.ErrCodeInvalidLevel, "aggregation level is not set")
	default:
		return errors.New(errors.ErrCodeInvalidLevel, "unsupported aggregation level %T", l)
	}
}

// modulePath returns the module path of a normalized file path.
// The level must have passed checkLevel.
func modulePath(l Level, filePath, rootPath string) string {
	dir := path.Dir(filePath)
	switch l := l.(type) {
	case Directory:
		return dir
	case TopLevel:
		return topLevelPath(dir, rootPath)
	case Package:
		return packagePath(l, dir, rootPath)
	case Custom:
		if p := l.Group(filePath, rootPath); p != "" {
			return resolve.Normalize(p)
		}
		return dir
	}
	return dir
}

func topLevelPath(dir, rootPath string) string {
	root := baseFor(dir, rootPath)
	rel, ok := relativeTo(dir, root)
	if !ok {
		return dir
	}
	if rel == "" {
		return root
	}
	segs := strings.Split(rel, "/")
	if len(segs) > 2 {
		segs = segs[:2]
	}
	return path.Join(append([]string{root}, segs...)...)
}

// baseFor returns the root p is grouped under. An empty root means the
// filesystem root for absolute paths and "." for relative ones.
func baseFor(p, root string) string {
	if root != "" {
		return root
	}
	if path.IsAbs(p) {
		return "/"
	}
	return "."
}

// relativeTo returns p relative to root, or false when p is outside root.
// An empty or "." root contains every relative path.
func relativeTo(p, root string) (string, bool) {
	switch {
	case p == root:
		return "", true
	case root == "" || root == ".":
		if path.IsAbs(p) {
			return "", false
		}
		if p == "." {
			return "", true
		}
		return p, true
	case root == "/":
		return strings.TrimPrefix(p, "/"), path.IsAbs(p)
	}
	rest, ok := strings.CutPrefix(p, root+"/")
	return rest, ok
}

func packagePath(l Package, dir, rootPath string) string {
	markers := l.Markers
	if len(markers) == 0 {
		markers = []string{DefaultPackageMarker}
	}
	stat := l.Stat
	if stat == nil {
		stat = os.Stat
	}

	root := baseFor(dir, rootPath)
	if _, ok := relativeTo(dir, root); !ok {
		return dir
	}
	for cur := dir; cur != root; {
		for _, m := range markers {
			if _, err := stat(filepath.FromSlash(path.Join(cur, m))); err == nil {
				return cur
			}
		}
		parent := path.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return dir
}
