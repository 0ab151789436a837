package pnpm

import (
	"bytes"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/matzehuels/pkgdeps/pkg/errors"
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// Decode parses pnpm-lock.yaml content.
//
// Only document-level problems fail: empty input, invalid YAML, a top level
// that is not a mapping, or packages/snapshots sections (or their entries)
// that are not mappings. Malformed package keys are kept verbatim and
// handled leniently at query time.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidLockfile, "lockfile is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidLockfile, err, "parse lockfile")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidLockfile, "lockfile has no content")
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidLockfile, "lockfile top level must be a mapping (line %d)", top.Line)
	}

	var doc Document
	if err := top.Decode(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidLockfile, err, "decode lockfile")
	}
	return &doc, nil
}

// PackageNames returns the distinct names of all packages-table keys in
// first-seen order.
func (d *Document) PackageNames() []string {
	seen := make(map[string]bool, d.Packages.Len())
	names := make([]string, 0, d.Packages.Len())
	for _, key := range d.Packages.Keys() {
		name := lockfile.ParseKey(key).Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
