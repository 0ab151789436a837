package pnpm

import (
	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// frame is one pending expansion: the dependents of a package still to be
// turned into nodes under parent.
type frame struct {
	parent  *lockfile.ChainNode
	matches []match
	next    int
}

// TraceDependencyChain expands the dependents of name depth-first.
//
// Every direct dependent becomes a root node; the dependents of each node are
// linked beneath it through their Parent field. A package is expanded at most
// once per call: by name, or by name@version when TraceByInstance is set.
// The target itself is expanded only once, whatever its version. A package
// reached again still gets a node but is not expanded, so cycles
// terminate and only the first chain reaching each package is expanded.
//
// The walk uses an explicit stack, so very long chains cannot exhaust the
// goroutine stack, and it visits nodes in the same order as a recursive walk.
func (a *Analyzer) TraceDependencyChain(name string) (*lockfile.Trace, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}

	trace := &lockfile.Trace{Target: name}
	visited := make(map[string]bool)

	enter := func(key, pkg string, parent *lockfile.ChainNode) *frame {
		if visited[key] {
			return nil
		}
		visited[key] = true
		return &frame{parent: parent, matches: a.dependents(doc, pkg, true)}
	}

	stack := []*frame{enter(name, name, nil)}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.matches) {
			stack = stack[:len(stack)-1]
			continue
		}
		m := f.matches[f.next]
		f.next++

		node := &lockfile.ChainNode{
			Name:    m.Name,
			Version: m.Version,
			Type:    m.Type,
			Parent:  f.parent,
		}
		trace.Nodes = append(trace.Nodes, node)
		if f.parent == nil {
			trace.Roots = append(trace.Roots, node)
		}

		if child := enter(a.visitKey(m, name), m.Name, node); child != nil {
			stack = append(stack, child)
		}
	}

	return trace, nil
}

// visitKey returns the visited-set key for m. Instances of the target share
// its bare name, since the target's dependents are collected by name.
func (a *Analyzer) visitKey(m match, target string) string {
	if a.opts.TraceByInstance && m.Name != target {
		return m.instance()
	}
	return m.Name
}
