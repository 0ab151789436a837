package pnpm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

const chainLock = `packages:
  /leaf@1.0.0: {}
  /mid@1.0.0:
    dependencies:
      leaf: ^1.0.0
  /top@1.0.0:
    dependencies:
      mid: ^1.0.0
  /side@1.0.0:
    optionalDependencies:
      leaf: ^1.0.0
`

func nodeNames(nodes []*lockfile.ChainNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}

func TestTrace_Chain(t *testing.T) {
	a := mustAnalyzer(t, chainLock, exact())

	tr, err := a.TraceDependencyChain("leaf")
	require.NoError(t, err)

	assert.Equal(t, "leaf", tr.Target)
	assert.Equal(t, []string{"mid@1.0.0", "side@1.0.0"}, nodeNames(tr.Roots))
	assert.Equal(t, []string{"mid@1.0.0", "top@1.0.0", "side@1.0.0"}, nodeNames(tr.Nodes))

	top := tr.Nodes[1]
	require.NotNil(t, top.Parent)
	assert.Equal(t, "mid", top.Parent.Name)
	assert.Equal(t, 1, top.Depth())
	assert.Equal(t, lockfile.Optional, tr.Nodes[2].Type)

	var chains []string
	for _, c := range tr.Chains() {
		chains = append(chains, strings.Join(nodeNames(c), " <- "))
	}
	assert.Equal(t, []string{"top@1.0.0 <- mid@1.0.0", "side@1.0.0"}, chains)
}

func TestTrace_NoDependents(t *testing.T) {
	a := mustAnalyzer(t, chainLock, exact())

	tr, err := a.TraceDependencyChain("top")
	require.NoError(t, err)
	assert.Empty(t, tr.Roots)
	assert.Empty(t, tr.Nodes)
}

func TestTrace_CycleTerminates(t *testing.T) {
	a := mustAnalyzer(t, `packages:
  /x@1.0.0:
    dependencies:
      y: ^1.0.0
  /y@1.0.0:
    dependencies:
      x: ^1.0.0
`, exact())

	tr, err := a.TraceDependencyChain("x")
	require.NoError(t, err)

	// y depends on x; x depends on y but x is already visited.
	assert.Equal(t, []string{"y@1.0.0", "x@1.0.0"}, nodeNames(tr.Nodes))
	assert.Len(t, tr.Roots, 1)
	assert.Same(t, tr.Nodes[0], tr.Nodes[1].Parent)
}

func TestTrace_CycleByInstance(t *testing.T) {
	opts := exact()
	opts.TraceByInstance = true
	a := mustAnalyzer(t, `packages:
  /x@1.0.0:
    dependencies:
      y: ^1.0.0
  /y@1.0.0:
    dependencies:
      x: ^1.0.0
`, opts)

	tr, err := a.TraceDependencyChain("x")
	require.NoError(t, err)

	// x@1.0.0 is the target, so it is not expanded again as an instance.
	assert.Equal(t, []string{"y@1.0.0", "x@1.0.0"}, nodeNames(tr.Nodes))
}

func TestTrace_EveryMatchingType(t *testing.T) {
	a := mustAnalyzer(t, `packages:
  /lib@1.0.0: {}
  /both@1.0.0:
    dependencies:
      lib: ^1.0.0
    peerDependencies:
      lib: ^1.0.0
`, exact())

	tr, err := a.TraceDependencyChain("lib")
	require.NoError(t, err)
	require.Len(t, tr.Roots, 2)
	assert.Equal(t, lockfile.Normal, tr.Roots[0].Type)
	assert.Equal(t, lockfile.Peer, tr.Roots[1].Type)
}

func TestTrace_VisitedByInstance(t *testing.T) {
	content := `packages:
  /lib@1.0.0: {}
snapshots:
  mid@1.0.0:
    dependencies:
      lib: 1.0.0
  mid@2.0.0:
    dependencies:
      lib: 1.0.0
  app@1.0.0:
    dependencies:
      mid: 2.0.0
`
	byName := mustAnalyzer(t, content, exact())
	tr, err := byName.TraceDependencyChain("lib")
	require.NoError(t, err)
	// mid is expanded once, under mid@1.0.0.
	assert.Equal(t, []string{"mid@1.0.0", "app@1.0.0", "mid@2.0.0"}, nodeNames(tr.Nodes))

	opts := exact()
	opts.TraceByInstance = true
	byInstance := mustAnalyzer(t, content, opts)
	tr, err = byInstance.TraceDependencyChain("lib")
	require.NoError(t, err)
	// Each mid instance is expanded; both find app.
	assert.Equal(t, []string{"mid@1.0.0", "app@1.0.0", "mid@2.0.0", "app@1.0.0"}, nodeNames(tr.Nodes))
}

func TestTrace_LongChain(t *testing.T) {
	const n = 1000
	var b strings.Builder
	b.WriteString("packages:\n  /p0@1.0.0: {}\n")
	for i := 1; i < n; i++ {
		fmt.Fprintf(&b, "  /p%d@1.0.0:\n    dependencies:\n      p%d: 1.0.0\n", i, i-1)
	}
	a := mustAnalyzer(t, b.String(), exact())

	tr, err := a.TraceDependencyChain("p0")
	require.NoError(t, err)
	require.Len(t, tr.Nodes, n-1)
	assert.Equal(t, n-2, tr.Nodes[len(tr.Nodes)-1].Depth())
}
