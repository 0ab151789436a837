package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

func sampleResult() *lockfile.Result {
	return &lockfile.Result{
		Name:    "react-dom",
		Version: "18.2.0",
		Found:   true,
		Dependencies: []lockfile.Dependency{
			{Name: "scheduler", Version: "^0.23.0", Type: lockfile.Normal},
			{Name: "react", Version: "^18.2.0", Type: lockfile.Peer},
			{Name: "fsevents", Version: "2.3.3", Type: lockfile.Optional},
		},
		DependedBy: []lockfile.Dependency{
			{Name: "ui", Version: "2.0.0", Type: lockfile.Peer},
			{Name: "app", Version: "1.0.0", Type: lockfile.Normal},
		},
	}
}

func sampleTrace() *lockfile.Trace {
	mid := &lockfile.ChainNode{Name: "mid", Version: "1.0.0", Type: lockfile.Normal}
	top := &lockfile.ChainNode{Name: "top", Version: "1.0.0", Type: lockfile.Normal, Parent: mid}
	side := &lockfile.ChainNode{Name: "side", Version: "1.0.0", Type: lockfile.Optional}
	return &lockfile.Trace{
		Target: "leaf",
		Roots:  []*lockfile.ChainNode{mid, side},
		Nodes:  []*lockfile.ChainNode{mid, top, side},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleResult()); err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	want := strings.Join([]string{
		"",
		"📦 react-dom@18.2.0",
		"",
		"Dependencies:",
		"  ├─ scheduler@^0.23.0",
		"",
		"Peer dependencies:",
		"  ├─ react@^18.2.0",
		"",
		"Optional dependencies:",
		"  ├─ fsevents@2.3.3",
		"",
		"Depended by:",
		"  ├─ app@1.0.0",
		"  ├─ ui@2.0.0 (peer)",
		"",
		strings.Repeat("=", 50),
		"",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("Text() =\n%q\nwant\n%q", got, want)
	}
}

func TestText_NoDependents(t *testing.T) {
	var buf bytes.Buffer
	res := &lockfile.Result{Name: "lonely", Version: "1.0.0"}
	if err := Text(&buf, res); err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No packages depend on this package") {
		t.Error("Text() missing empty dependents message")
	}
	if strings.Contains(out, "Dependencies:") {
		t.Error("Text() printed an empty dependencies section")
	}
}

func TestText_UnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, &lockfile.Result{Name: "ghost"}); err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if !strings.Contains(buf.String(), "📦 ghost\n") {
		t.Errorf("Text() header = %q, want bare name", strings.SplitN(buf.String(), "\n", 3)[1])
	}
}

func TestChains(t *testing.T) {
	var buf bytes.Buffer
	if err := Chains(&buf, sampleTrace()); err != nil {
		t.Fatalf("Chains failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Dependency chains for leaf:",
		"  top@1.0.0 → mid@1.0.0 (normal)",
		"  side@1.0.0 (optional)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Chains() missing %q in:\n%s", want, out)
		}
	}
}

func TestChains_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Chains(&buf, &lockfile.Trace{Target: "x"}); err != nil {
		t.Fatalf("Chains failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("Chains() = %q, want (none)", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	reports := []Report{
		NewReport(sampleResult(), sampleTrace()),
		NewReport(&lockfile.Result{Name: "ghost", Dependencies: []lockfile.Dependency{}, DependedBy: []lockfile.Dependency{}}, nil),
	}
	if err := JSON(&buf, reports); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0]["name"] != "react-dom" || got[0]["version"] != "18.2.0" {
		t.Errorf("first report = %v", got[0])
	}
	chains, ok := got[0]["chains"].([]any)
	if !ok || len(chains) != 2 {
		t.Errorf("chains = %v, want 2 chains", got[0]["chains"])
	}
	if _, ok := got[1]["version"]; ok {
		t.Error("unknown version should be omitted")
	}
	if _, ok := got[1]["chains"]; ok {
		t.Error("untraced report should omit chains")
	}
	if got[1]["found"] != false {
		t.Errorf("found = %v, want false", got[1]["found"])
	}
}

func TestJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("JSON(nil) = %q, want []", got)
	}
}

func TestDOT(t *testing.T) {
	dot := DOT(sampleTrace())

	for _, want := range []string{
		"digraph G",
		`"leaf" [fillcolor=lightblue];`,
		`"mid@1.0.0" -> "leaf";`,
		`"top@1.0.0" -> "mid@1.0.0";`,
		`"side@1.0.0" -> "leaf" [style=dotted, label="optional"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestDOT_DedupesInstances(t *testing.T) {
	a := &lockfile.ChainNode{Name: "a", Version: "1", Type: lockfile.Normal}
	b := &lockfile.ChainNode{Name: "a", Version: "1", Type: lockfile.Normal}
	dot := DOT(&lockfile.Trace{Target: "t", Roots: []*lockfile.ChainNode{a, b}, Nodes: []*lockfile.ChainNode{a, b}})

	if n := strings.Count(dot, `"a@1" -> "t";`); n != 1 {
		t.Errorf("edge count = %d, want 1", n)
	}
	if n := strings.Count(dot, `"a@1" [label=`); n != 1 {
		t.Errorf("node count = %d, want 1", n)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}

func TestDOT_MultipleTraces(t *testing.T) {
	shared := &lockfile.ChainNode{Name: "app", Version: "1.0.0", Type: lockfile.Normal}
	other := &lockfile.ChainNode{Name: "app", Version: "1.0.0", Type: lockfile.Peer}
	dot := DOT(
		&lockfile.Trace{Target: "a", Roots: []*lockfile.ChainNode{shared}, Nodes: []*lockfile.ChainNode{shared}},
		&lockfile.Trace{Target: "b", Roots: []*lockfile.ChainNode{other}, Nodes: []*lockfile.ChainNode{other}},
	)

	for _, want := range []string{
		`"a" [fillcolor=lightblue];`,
		`"b" [fillcolor=lightblue];`,
		`"app@1.0.0" -> "a";`,
		`"app@1.0.0" -> "b" [style=dashed, label="peer"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT() missing %q in:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"app@1.0.0" [label=`); n != 1 {
		t.Errorf("node count = %d, want 1", n)
	}
}
