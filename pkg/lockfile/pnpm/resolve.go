package pnpm

import (
	"strings"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// Analyze reports the dependencies and direct dependents of name.
//
// Dependencies come from the unqualified base entry for name (normal, then
// peer, then optional) and from its snapshot (normal, then optional),
// de-duplicated by name. Each dependent entry contributes once, tagged with
// the first of normal, peer, optional that names the package.
// An unknown name yields empty lists and an empty version.
func (a *Analyzer) Analyze(name string) (*lockfile.Result, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}

	res := &lockfile.Result{
		Name:         name,
		Dependencies: []lockfile.Dependency{},
		DependedBy:   []lockfile.Dependency{},
	}

	if key, rec, ok := doc.basePackage(name); ok {
		res.Version = key.Version
		res.Found = true

		addByType(&res.Dependencies, rec.Dependencies, lockfile.Normal)
		addByType(&res.Dependencies, rec.PeerDependencies, lockfile.Peer)
		addByType(&res.Dependencies, rec.OptionalDependencies, lockfile.Optional)

		// Peers come only from the base entry.
		if snap, ok := doc.Snapshots.Get(name + "@" + res.Version); ok {
			addByType(&res.Dependencies, snap.Dependencies, lockfile.Normal)
			addByType(&res.Dependencies, snap.OptionalDependencies, lockfile.Optional)
		}
	}

	for _, m := range a.dependents(doc, name, false) {
		res.DependedBy = append(res.DependedBy, lockfile.Dependency{
			Name:    m.Name,
			Version: m.Version,
			Type:    m.Type,
		})
	}
	return res, nil
}

// basePackage returns the first packages entry whose key parses to name and
// carries no peer qualifier.
func (d *Document) basePackage(name string) (lockfile.Key, *PackageRecord, bool) {
	for raw, rec := range d.Packages.All() {
		if lockfile.IsQualified(raw) {
			continue
		}
		if key := lockfile.ParseKey(raw); key.Name == name {
			return key, rec, true
		}
	}
	return lockfile.Key{}, nil, false
}

// addByType appends one entry per dependency unless an entry with the same
// name is already in target, whatever its type.
func addByType(target *[]lockfile.Dependency, deps DependencyMap, t lockfile.DependencyType) {
	for name, version := range deps.All() {
		if containsName(*target, name) {
			continue
		}
		*target = append(*target, lockfile.Dependency{Name: name, Version: version, Type: t})
	}
}

func containsName(deps []lockfile.Dependency, name string) bool {
	for _, d := range deps {
		if d.Name == name {
			return true
		}
	}
	return false
}

// match is one entry that depends on a queried package.
type match struct {
	Name    string
	Version string
	Type    lockfile.DependencyType
}

func (m match) instance() string { return m.Name + "@" + m.Version }

// dependents scans packages then snapshots, in document order, for entries
// whose normal, peer or optional dependencies name the package.
// With every set, an entry yields one match per matching type; otherwise
// only the first matching type counts.
func (a *Analyzer) dependents(doc *Document, name string, every bool) []match {
	var out []match

	for raw, rec := range doc.Packages.All() {
		key := lockfile.ParseKey(raw)
		if a.isSelf(raw, key, name) {
			continue
		}
		version := key.Version
		if version == "" {
			version = rec.Version
		}
		for _, t := range matchTypes(name, every, rec.Dependencies, rec.PeerDependencies, rec.OptionalDependencies) {
			out = append(out, match{Name: key.Name, Version: version, Type: t})
		}
	}

	for raw, rec := range doc.Snapshots.All() {
		key := lockfile.ParseKey(raw)
		if a.isSelf(raw, key, name) {
			continue
		}
		for _, t := range matchTypes(name, every, rec.Dependencies, rec.PeerDependencies, rec.OptionalDependencies) {
			out = append(out, match{Name: key.Name, Version: key.Version, Type: t})
		}
	}

	return out
}

// isSelf reports whether an entry is excluded from the dependent search for
// name. Legacy mode skips any key containing name as a substring.
func (a *Analyzer) isSelf(raw string, key lockfile.Key, name string) bool {
	if a.opts.ExactSelfMatch {
		return key.Name == name
	}
	return strings.Contains(raw, name)
}

// matchTypes returns the types under which name is declared, in
// normal, peer, optional order, stopping at the first unless every is set.
func matchTypes(name string, every bool, normal, peer, optional DependencyMap) []lockfile.DependencyType {
	var types []lockfile.DependencyType
	for i, deps := range []DependencyMap{normal, peer, optional} {
		if !deps.Has(name) {
			continue
		}
		types = append(types, lockfile.Types[i])
		if !every {
			break
		}
	}
	return types
}
