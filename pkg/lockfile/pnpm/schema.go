package pnpm

import (
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Document is the decoded pnpm-lock.yaml. Sections other than
// lockfileVersion, packages and snapshots are ignored.
type Document struct {
	LockfileVersion LockfileVersion       `yaml:"lockfileVersion" json:"lockfileVersion"`
	Packages        Table[PackageRecord]  `yaml:"packages" json:"packages"`
	Snapshots       Table[SnapshotRecord] `yaml:"snapshots" json:"snapshots"`
}

// PackageRecord is one entry of the packages table.
type PackageRecord struct {
	Version              string        `yaml:"version" json:"version,omitempty"`
	Dependencies         DependencyMap `yaml:"dependencies" json:"dependencies"`
	DevDependencies      DependencyMap `yaml:"devDependencies" json:"devDependencies"`
	PeerDependencies     DependencyMap `yaml:"peerDependencies" json:"peerDependencies"`
	OptionalDependencies DependencyMap `yaml:"optionalDependencies" json:"optionalDependencies"`
}

// SnapshotRecord is one entry of the snapshots table: the fully resolved
// dependency set of one resolved instance.
type SnapshotRecord struct {
	Dependencies         DependencyMap `yaml:"dependencies" json:"dependencies"`
	DevDependencies      DependencyMap `yaml:"devDependencies" json:"devDependencies"`
	PeerDependencies     DependencyMap `yaml:"peerDependencies" json:"peerDependencies"`
	OptionalDependencies DependencyMap `yaml:"optionalDependencies" json:"optionalDependencies"`
}

// LockfileVersion holds lockfileVersion as text. pnpm writes it as a number
// in older files (5.4) and as a quoted string in newer ones ('9.0').
type LockfileVersion string

// UnmarshalYAML accepts any scalar.
func (v *LockfileVersion) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: lockfileVersion must be a scalar", n.Line)
	}
	*v = LockfileVersion(n.Value)
	return nil
}

// DependencyMap maps dependency names to version strings, preserving the
// order in which they appear in the lockfile. The zero value is empty.
type DependencyMap struct {
	names  []string
	ranges map[string]string
}

// Len returns the number of dependencies.
func (m DependencyMap) Len() int { return len(m.names) }

// Get returns the version string recorded for name.
func (m DependencyMap) Get(name string) (string, bool) {
	v, ok := m.ranges[name]
	return v, ok
}

// Has reports whether name is present.
func (m DependencyMap) Has(name string) bool {
	_, ok := m.ranges[name]
	return ok
}

// All iterates name/version pairs in document order.
func (m DependencyMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range m.names {
			if !yield(name, m.ranges[name]) {
				return
			}
		}
	}
}

// set records name; a repeated name keeps its first position and the last
// value, matching how YAML loaders resolve duplicate keys.
func (m *DependencyMap) set(name, version string) {
	if m.ranges == nil {
		m.ranges = make(map[string]string)
	}
	if _, ok := m.ranges[name]; !ok {
		m.names = append(m.names, name)
	}
	m.ranges[name] = version
}

// UnmarshalYAML decodes a mapping of scalar values. Non-string scalars keep
// their literal text, so `foo: 1` records "1".
func (m *DependencyMap) UnmarshalYAML(n *yaml.Node) error {
	*m = DependencyMap{}
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dependencies must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: version of %q must be a scalar", v.Line, k.Value)
		}
		m.set(k.Value, v.Value)
	}
	return nil
}

// MarshalJSON encodes the map as an ordered list of [name, version] pairs.
func (m DependencyMap) MarshalJSON() ([]byte, error) {
	pairs := make([][2]string, 0, len(m.names))
	for name, version := range m.All() {
		pairs = append(pairs, [2]string{name, version})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (m *DependencyMap) UnmarshalJSON(data []byte) error {
	var pairs [][2]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	*m = DependencyMap{}
	for _, p := range pairs {
		m.set(p[0], p[1])
	}
	return nil
}

// Table is an order-preserving mapping from lockfile keys to records.
// The zero value is empty.
type Table[T any] struct {
	keys []string
	rows map[string]*T
}

// Len returns the number of entries.
func (t Table[T]) Len() int { return len(t.keys) }

// Keys returns the keys in document order.
func (t Table[T]) Keys() []string { return t.keys }

// Get returns the record stored under key.
func (t Table[T]) Get(key string) (*T, bool) {
	r, ok := t.rows[key]
	return r, ok
}

// All iterates key/record pairs in document order.
func (t Table[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for _, k := range t.keys {
			if !yield(k, t.rows[k]) {
				return
			}
		}
	}
}

func (t *Table[T]) set(key string, row *T) {
	if t.rows == nil {
		t.rows = make(map[string]*T)
	}
	if _, ok := t.rows[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = row
}

// UnmarshalYAML decodes a mapping of records. A null record (`key:` or
// `key: {}`) decodes to an empty record.
func (t *Table[T]) UnmarshalYAML(n *yaml.Node) error {
	*t = Table[T]{}
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of package entries", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		row := new(T)
		if !isNull(v) {
			if v.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: entry %q must be a mapping", v.Line, k.Value)
			}
			if err := v.Decode(row); err != nil {
				return fmt.Errorf("entry %q: %w", k.Value, err)
			}
		}
		t.set(k.Value, row)
	}
	return nil
}

type tableEntry[T any] struct {
	Key    string `json:"key"`
	Record *T     `json:"record"`
}

// MarshalJSON encodes the table as an ordered list of entries.
func (t Table[T]) MarshalJSON() ([]byte, error) {
	entries := make([]tableEntry[T], 0, len(t.keys))
	for k, r := range t.All() {
		entries = append(entries, tableEntry[T]{Key: k, Record: r})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (t *Table[T]) UnmarshalJSON(data []byte) error {
	var entries []tableEntry[T]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*t = Table[T]{}
	for _, e := range entries {
		if e.Record == nil {
			e.Record = new(T)
		}
		t.set(e.Key, e.Record)
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
