package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

const ruleWidth = 50

var (
	colorCyan    = lipgloss.Color("36")
	colorYellow  = lipgloss.Color("220")
	colorBlue    = lipgloss.Color("75")
	colorMagenta = lipgloss.Color("170")
	colorGray    = lipgloss.Color("245")
)

// palette holds styles bound to one writer, so color is only emitted when
// that writer is a terminal.
type palette struct {
	header, normal, peer, optional, dependents, item lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		header:     r.NewStyle().Foreground(colorCyan),
		normal:     r.NewStyle().Foreground(colorCyan),
		peer:       r.NewStyle().Foreground(colorYellow),
		optional:   r.NewStyle().Foreground(colorBlue),
		dependents: r.NewStyle().Foreground(colorMagenta),
		item:       r.NewStyle().Foreground(colorGray),
	}
}

func (p palette) forType(t lockfile.DependencyType) lipgloss.Style {
	switch t {
	case lockfile.Peer:
		return p.peer
	case lockfile.Optional:
		return p.optional
	default:
		return p.item
	}
}

// Text writes the report for one analyzed package:
//
//	📦 react-dom@18.2.0
//
//	Dependencies:
//	  ├─ scheduler@^0.23.0
//
//	Peer dependencies:
//	  ├─ react@^18.2.0
//
//	Depended by:
//	  ├─ app@1.0.0
//
//	==================================================
//
// Sections without entries are omitted. When nothing depends on the package
// the dependents section reads "No packages depend on this package".
func Text(w io.Writer, res *lockfile.Result) error {
	p := newPalette(w)
	var lines []string

	lines = append(lines, "", p.header.Render("📦 "+label(res.Name, res.Version)))

	sections := []struct {
		title string
		style lipgloss.Style
		typ   lockfile.DependencyType
	}{
		{"Dependencies:", p.normal, lockfile.Normal},
		{"Peer dependencies:", p.peer, lockfile.Peer},
		{"Optional dependencies:", p.optional, lockfile.Optional},
	}
	for _, s := range sections {
		deps := lockfile.ByType(res.Dependencies, s.typ)
		if len(deps) == 0 {
			continue
		}
		lines = append(lines, "", s.style.Render(s.title))
		for _, d := range deps {
			lines = append(lines, p.item.Render(item(d)))
		}
	}

	if len(res.DependedBy) == 0 {
		lines = append(lines, "", p.item.Render("No packages depend on this package"))
	} else {
		lines = append(lines, "", p.dependents.Render("Depended by:"))
		for _, t := range lockfile.Types {
			for _, d := range lockfile.ByType(res.DependedBy, t) {
				line := item(d)
				if t != lockfile.Normal {
					line += " (" + string(t) + ")"
				}
				lines = append(lines, p.forType(t).Render(line))
			}
		}
	}

	lines = append(lines, "", strings.Repeat("=", ruleWidth), "")

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func item(d lockfile.Dependency) string {
	return "  ├─ " + d.Name + "@" + d.Version
}

// label formats name@version, or just the name when the version is unknown.
func label(name, version string) string {
	if version == "" {
		return name
	}
	return name + "@" + version
}
