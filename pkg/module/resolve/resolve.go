// Package resolve turns raw import specifiers into canonical file IDs.
//
// Import edges in a code property graph often point at the specifier as
// written in source ("../sibling/File", "./util.js") rather than at a file
// node. A [Resolver] resolves relative specifiers against the importing
// file's directory and probes a fixed list of candidate spellings against a
// path index; the first candidate present in the index wins.
//
// Candidates, in order, for a specifier s imported from directory d:
//
//  1. d + "/" + s, exactly as written
//  2. the normalized form of (1)
//  3. (2) with a trailing ".js" replaced by ".ts"
//  4. (2) with a trailing ".jsx" replaced by ".tsx"
//  5. (2) + ".ts"
//  6. (2) + ".tsx"
//  7. (2) + ".js"
//  8. (2) + "/index.ts"
//  9. (2) + "/index.js"
//
// Bare specifiers ("lodash", "@scope/pkg", "node:fs") never resolve: they
// name third-party or built-in packages, even if an indexed path happens to
// match the string.
package resolve

import (
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize is the default number of (directory, specifier) results a
// Resolver remembers.
const DefaultMemoSize = 4096

// Normalize converts p to the canonical form used as index keys:
// backslashes become forward slashes and the result is path.Clean'ed.
// The empty string stays empty.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// IsRelative reports whether spec is a relative specifier ("./" or "../").
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

type memoKey struct {
	dir, spec string
}

type memoValue struct {
	id string
	ok bool
}

// Resolver resolves relative import specifiers against a path index.
//
// A Resolver is built for a single dependency calculation and owns its
// memo; it is not safe for concurrent use.
type Resolver struct {
	index map[string]string
	memo  *lru.Cache[memoKey, memoValue]
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	memoSize int
}

// WithMemoSize bounds the number of memoized results. A size <= 0 disables
// memoization.
func WithMemoSize(n int) Option {
	return func(o *options) { o.memoSize = n }
}

// New creates a resolver over pathToFileID, a map from normalized file path
// to file node ID. The map is read, never modified.
func New(pathToFileID map[string]string, opts ...Option) *Resolver {
	o := options{memoSize: DefaultMemoSize}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Resolver{index: pathToFileID}
	if o.memoSize > 0 {
		// lru.New only fails for a non-positive size.
		r.memo, _ = lru.New[memoKey, memoValue](o.memoSize)
	}
	return r
}

// Resolve resolves spec as imported from the file at sourcePath.
// It returns the matching file ID and true, or "" and false when spec is
// not relative or no candidate is indexed.
func (r *Resolver) Resolve(sourcePath, spec string) (string, bool) {
	if !IsRelative(spec) {
		return "", false
	}
	dir := path.Dir(Normalize(sourcePath))

	key := memoKey{dir: dir, spec: spec}
	if r.memo != nil {
		if v, ok := r.memo.Get(key); ok {
			return v.id, v.ok
		}
	}

	id, ok := r.probe(dir, spec)
	if r.memo != nil {
		r.memo.Add(key, memoValue{id: id, ok: ok})
	}
	return id, ok
}

func (r *Resolver) probe(dir, spec string) (string, bool) {
	for _, c := range Candidates(dir, spec) {
		if id, ok := r.index[c]; ok {
			return id, true
		}
	}
	return "", false
}

// Candidates returns the ordered candidate paths probed for spec imported
// from directory dir. Duplicates are kept so the order is exactly the
// documented probe order.
func Candidates(dir, spec string) []string {
	literal := dir + "/" + spec
	norm := Normalize(literal)

	out := make([]string, 0, 9)
	out = append(out, literal, norm)
	if base, ok := strings.CutSuffix(norm, ".js"); ok {
		out = append(out, base+".ts")
	}
	if base, ok := strings.CutSuffix(norm, ".jsx"); ok {
		out = append(out, base+".tsx")
	}
	out = append(out,
		norm+".ts",
		norm+".tsx",
		norm+".js",
		norm+"/index.ts",
		norm+"/index.js",
	)
	return out
}
