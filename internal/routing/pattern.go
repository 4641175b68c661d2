package routing

import (
	"path"
	"strings"

	"github.com/mosaicgen/mosaic/internal/config"
)

// MatchPattern reports whether a relative path matches a manifest path
// pattern. Patterns use path.Match syntax per segment, with two extensions:
// a trailing "/**" matches any suffix, and a bare "**" matches everything.
func MatchPattern(pattern, relPath string) bool {
	pattern = strings.TrimPrefix(path.Clean("/"+pattern), "/")
	relPath = strings.TrimPrefix(path.Clean("/"+relPath), "/")

	if pattern == "**" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if relPath == prefix {
			return false // "ui/**" matches contents of ui/, not ui itself
		}
		if !strings.HasPrefix(relPath, prefix+"/") {
			return false
		}
		return true
	}

	patSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(relPath, "/")
	if len(patSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patSegs {
		ok, err := path.Match(seg, pathSegs[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// CategoryFor returns the category of the first mapping whose pattern matches
// the given relative path, or "" when no mapping applies.
func CategoryFor(mappings []*config.PathMapping, relPath string) string {
	for _, m := range mappings {
		if MatchPattern(m.Pattern, relPath) {
			return m.Category
		}
	}
	return ""
}
