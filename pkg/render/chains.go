package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

const chainArrow = " → "

// Chains writes every traced chain on its own line, from the outermost
// dependent down to the direct dependent, followed by how that direct
// dependent declares the target:
//
//	Dependency chains for leaf:
//	  app@1.0.0 → mid@1.0.0 (normal)
func Chains(w io.Writer, tr *lockfile.Trace) error {
	p := newPalette(w)
	var b strings.Builder

	b.WriteString(p.dependents.Render("Dependency chains for "+tr.Target+":") + "\n")

	chains := tr.Chains()
	if len(chains) == 0 {
		b.WriteString(p.item.Render("  (none)") + "\n")
	}
	for _, chain := range chains {
		t := chain[len(chain)-1].Type
		fmt.Fprintf(&b, "  %s %s\n", ChainString(chain), p.forType(t).Render("("+string(t)+")"))
	}

	_, err := fmt.Fprintln(w, b.String())
	return err
}

// ChainString joins a leaf-to-root path as "a@1 → b@2".
func ChainString(chain []*lockfile.ChainNode) string {
	parts := make([]string, len(chain))
	for i, n := range chain {
		parts[i] = label(n.Name, n.Version)
	}
	return strings.Join(parts, chainArrow)
}
