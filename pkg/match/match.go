// Package match expands wildcard package patterns against the names found in
// a lockfile.
//
// Patterns use glob syntax with "/" as the separator, so scoped names behave
// like paths:
//
//	*            any unscoped name
//	@types/*     every package in the @types scope
//	**           any name, scoped or not
//	react-?om    a single character
//	@{vue,nuxt}/*  alternatives
//	!react       every name except react
//
// A pattern without glob metacharacters matches one name exactly. A leading
// "!" negates a pattern: negated patterns remove names from the result, and
// when every pattern is negated they apply to all names.
package match

import (
	"strings"

	"github.com/gobwas/glob"

	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
)

const metaChars = "*?[]{}"

// IsPattern reports whether p contains glob metacharacters.
func IsPattern(p string) bool {
	return strings.ContainsAny(p, metaChars)
}

// Compile validates and compiles one pattern.
func Compile(pattern string) (glob.Glob, error) {
	if err := pkgerrors.ValidatePattern(pattern); err != nil {
		return nil, err
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPattern, err, "invalid pattern %q", pattern)
	}
	return g, nil
}

// Packages expands patterns over names.
//
// The result lists, for each pattern in order, the matching names in the
// order of names. Each name appears once, at its first position. Names
// matched by any negated pattern are then removed. Patterns that match
// nothing contribute nothing, so an empty result means no pattern matched a
// known name.
func Packages(names, patterns []string) ([]string, error) {
	var include, exclude []glob.Glob
	for _, p := range patterns {
		neg, rest := strings.CutPrefix(p, "!")
		g, err := compileOne(rest)
		if err != nil {
			return nil, err
		}
		if neg {
			exclude = append(exclude, g)
		} else {
			include = append(include, g)
		}
	}
	if len(include) == 0 && len(exclude) > 0 {
		include = []glob.Glob{matchAll{}}
	}

	seen := make(map[string]bool)
	var out []string
	for _, g := range include {
		for _, name := range names {
			if !seen[name] && g.Match(name) && !matchesAny(exclude, name) {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// compileOne compiles p, treating a pattern without metacharacters as an
// exact name.
func compileOne(p string) (glob.Glob, error) {
	if !IsPattern(p) {
		if err := pkgerrors.ValidatePattern(p); err != nil {
			return nil, err
		}
		return literal(p), nil
	}
	return Compile(p)
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

type literal string

func (l literal) Match(s string) bool { return string(l) == s }

type matchAll struct{}

func (matchAll) Match(string) bool { return true }
