// Package formats selects a lockfile analyzer by file name.
//
// This package exists to break import cycles: format packages (pnpm, ...)
// import pkg/lockfile, so pkg/lockfile cannot import them back. Callers that
// need to open an arbitrary lockfile import this package instead.
//
// Usage:
//
//	a, err := formats.New("pnpm-lock.yaml", lockfile.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if err := a.Init(ctx); err != nil {
//	    return err
//	}
package formats

import (
	"path/filepath"
	"strings"

	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
	"github.com/matzehuels/pkgdeps/pkg/lockfile/pnpm"
)

// Format describes one supported lockfile format.
type Format struct {
	// Name is the lockfile base name, e.g. "pnpm-lock.yaml".
	Name string
	// Supports reports whether a base name belongs to this format.
	Supports func(filename string) bool
	// New creates an uninitialized analyzer for the file at path.
	New func(path string, opts lockfile.Options) lockfile.Analyzer
}

// All is the canonical list of supported lockfile formats.
var All = []Format{
	{
		Name:     pnpm.FileName,
		Supports: pnpm.Supports,
		New: func(path string, opts lockfile.Options) lockfile.Analyzer {
			return pnpm.New(path, opts)
		},
	},
}

// New returns an analyzer for the lockfile at path, chosen by its base name.
// The analyzer is not initialized.
func New(path string, opts lockfile.Options) (lockfile.Analyzer, error) {
	name := filepath.Base(path)
	if err := pkgerrors.ValidateLockfileName(name); err != nil {
		return nil, err
	}
	if f, ok := Find(name); ok {
		return f.New(path, opts), nil
	}
	return nil, pkgerrors.New(pkgerrors.ErrCodeUnsupportedFormat,
		"unsupported lockfile %q (supported: %s)", name, strings.Join(Supported(), ", "))
}

// Find returns the format that handles the given base name.
func Find(filename string) (Format, bool) {
	for _, f := range All {
		if f.Supports(filename) {
			return f, true
		}
	}
	return Format{}, false
}

// Supported returns the supported lockfile names.
func Supported() []string {
	names := make([]string, len(All))
	for i, f := range All {
		names[i] = f.Name
	}
	return names
}
