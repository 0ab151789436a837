package lockfile

import (
	"regexp"
	"strings"
)

var (
	// qualifiedKeyRe matches "name@version(qualifier)". The qualifier runs to
	// the final ")" and may itself hold several parenthesized groups.
	qualifiedKeyRe = regexp.MustCompile(`^(.+?)@([^(]+)\((.*?)\)$`)
	// plainKeyRe matches "name@version" without parentheses.
	plainKeyRe = regexp.MustCompile(`^(.+?)@([^(]+)$`)
)

// Key is a parsed package key.
type Key struct {
	Name    string // package name, e.g. "@babel/core"
	Version string // version including any peer qualifier, "" if absent
	Path    string // the key with its leading "/" removed
}

// ParseKey splits a lockfile package key into name and version.
//
//	ParseKey("/a@1.0.0")                 // {Name: "a", Version: "1.0.0"}
//	ParseKey("unbuild@2.0.0(ts@5.7.2)")  // {Name: "unbuild", Version: "2.0.0(ts@5.7.2)"}
//	ParseKey("@scope/pkg@1.0.0")         // {Name: "@scope/pkg", Version: "1.0.0"}
//
// Keys without a "name@version" structure never fail: the whole key becomes
// the name and the version is empty.
func ParseKey(key string) Key {
	path := strings.TrimPrefix(key, "/")

	if m := qualifiedKeyRe.FindStringSubmatch(path); m != nil {
		return Key{Name: m[1], Version: m[2] + "(" + m[3] + ")", Path: path}
	}
	if m := plainKeyRe.FindStringSubmatch(path); m != nil {
		return Key{Name: m[1], Version: m[2], Path: path}
	}
	return Key{Name: path, Path: path}
}

// IsQualified reports whether a raw key carries a peer qualifier.
func IsQualified(key string) bool {
	return strings.Contains(key, "(")
}

// String re-joins the key as "name@version", or just the name when the
// version is empty.
func (k Key) String() string {
	if k.Version == "" {
		return k.Name
	}
	return k.Name + "@" + k.Version
}
