package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ChainListModel - Interactive dependency chain browser
// =============================================================================

// ChainRow is one traced chain, ordered from the outermost dependent down to
// the direct dependent of Target.
type ChainRow struct {
	Target string
	Chain  []*lockfile.ChainNode
}

// Dependent returns the outermost package of the chain.
func (r ChainRow) Dependent() *lockfile.ChainNode { return r.Chain[0] }

// Direct returns the package that depends on Target directly.
func (r ChainRow) Direct() *lockfile.ChainNode { return r.Chain[len(r.Chain)-1] }

// ChainListModel is the bubbletea model for browsing traced chains.
type ChainListModel struct {
	Rows     []ChainRow
	Cursor   int
	Selected *ChainRow
	Height   int
	Offset   int
}

// NewChainListModel creates a chain list over every chain of every trace.
func NewChainListModel(traces []*lockfile.Trace) ChainListModel {
	var rows []ChainRow
	for _, tr := range traces {
		for _, chain := range tr.Chains() {
			rows = append(rows, ChainRow{Target: tr.Target, Chain: chain})
		}
	}
	return ChainListModel{
		Rows:   rows,
		Height: 15,
	}
}

func (m ChainListModel) Init() tea.Cmd {
	return nil
}

func (m ChainListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, tea.Quit
			}
			row := m.Rows[m.Cursor]
			m.Selected = &row
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ChainListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Chains"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		via := "—"
		if len(r.Chain) > 1 {
			parts := make([]string, 0, len(r.Chain)-1)
			for _, n := range r.Chain[1:] {
				parts = append(parts, n.Name)
			}
			via = strings.Join(parts, " → ")
		}

		rows = append(rows, []string{
			cursor,
			r.Dependent().String(),
			via,
			r.Target,
			string(r.Direct().Type),
			fmt.Sprint(len(r.Chain)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dependent", "Via", "Target", "Type", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 4 {
				switch m.Rows[idx].Direct().Type {
				case lockfile.Peer:
					base = base.Foreground(colorYellow)
				case lockfile.Optional:
					base = base.Foreground(colorBlue)
				default:
					base = base.Foreground(colorGray)
				}
			}
			if idx == m.Cursor {
				if col == 1 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col == 2 || col == 5 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
