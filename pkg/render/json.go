package render

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// Link is one element of a chain in JSON output.
type Link struct {
	Name    string                  `json:"name"`
	Version string                  `json:"version"`
	Type    lockfile.DependencyType `json:"type"`
}

// Report is the JSON form of one analyzed package.
type Report struct {
	*lockfile.Result
	// Chains lists leaf-to-root paths when the package was traced.
	Chains [][]Link `json:"chains,omitempty"`
}

// NewReport combines an analysis result with an optional trace.
func NewReport(res *lockfile.Result, tr *lockfile.Trace) Report {
	r := Report{Result: res}
	if tr == nil {
		return r
	}
	chains := tr.Chains()
	r.Chains = make([][]Link, 0, len(chains))
	for _, chain := range chains {
		links := make([]Link, len(chain))
		for i, n := range chain {
			links[i] = Link{Name: n.Name, Version: n.Version, Type: n.Type}
		}
		r.Chains = append(r.Chains, links)
	}
	return r
}

// JSON writes reports as an indented JSON array.
func JSON(w io.Writer, reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(reports)
}
