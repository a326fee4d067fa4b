// Package tui renders a laid-out surrogate tree as an interactive terminal
// outline.
//
// The model drives the same presenter state machine the SVG hover script
// uses: moving the cursor onto a row lights that node's decision path and
// opens its explanation overlay. The outline, the lit path and the overlay
// box therefore always agree with what a browser would show for the same
// tree.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lbrandt/suitree/pkg/scene"
)

// Outline styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	litStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// termSurface tracks presenter state for the outline. The draw calls are
// no-ops since the rows are built from the layout directly; only the lit
// edge set and the open overlay matter to the view.
type termSurface struct {
	lit     map[string]bool
	overlay *scene.OverlayVisual
}

func (s *termSurface) DrawNode(scene.NodeVisual) {}
func (s *termSurface) DrawEdge(scene.EdgeVisual) {}
func (s *termSurface) DrawAxis(scene.AxisVisual) {}

func (s *termSurface) Mark(edgeID string)   { s.lit[edgeID] = true }
func (s *termSurface) Unmark(edgeID string) { delete(s.lit, edgeID) }

func (s *termSurface) ShowOverlay(v scene.OverlayVisual) { s.overlay = &v }
func (s *termSurface) HideOverlay()                      { s.overlay = nil }

// row is one line of the outline, in preorder with the no-branch first,
// matching the traversal order of the layout.
type row struct {
	id     string
	depth  int
	leaf   bool
	title  string
	detail string
	fill   string
}

// Model is the bubbletea model for the tree outline.
type Model struct {
	ctx       *scene.RenderContext
	rows      []row
	cursor    int
	offset    int
	height    int
	surface   *termSurface
	presenter *scene.Presenter
	quitting  bool
}

// New builds an outline over a laid-out scene and enters its first row, so
// the initial frame already shows a lit path and an overlay.
func New(ctx *scene.RenderContext) Model {
	s := &termSurface{lit: map[string]bool{}}
	m := Model{
		ctx:       ctx,
		height:    15,
		surface:   s,
		presenter: scene.NewPresenter(ctx, s),
	}
	for _, n := range ctx.Layout().Nodes() {
		v := ctx.NodeVisual(n)
		m.rows = append(m.rows, row{
			id:     n.ID,
			depth:  n.Depth,
			leaf:   v.Leaf,
			title:  v.Title,
			detail: v.Detail,
			fill:   v.Fill,
		})
	}
	m.enter()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.presenter.Leave()
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
				m.enter()
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
				m.enter()
			}
		case "g", "home":
			m.cursor = 0
			m.offset = 0
			m.enter()
		case "G", "end":
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
				m.enter()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// enter routes the cursor row through the presenter. Enter clears the
// previous highlight itself, so cursor movement needs no explicit Leave.
func (m *Model) enter() {
	if len(m.rows) == 0 {
		return
	}
	m.presenter.Enter(m.rows[m.cursor].id)
}

// litNodes maps the lit edge set back to node ids so rows can be styled.
func (m Model) litNodes() map[string]bool {
	lit := map[string]bool{}
	for id := range m.surface.lit {
		if e, ok := m.ctx.Graph().Edge(id); ok {
			lit[e.From] = true
			lit[e.To] = true
		}
	}
	return lit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Surrogate tree"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate  g/G jump  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(detailStyle.Render("  (empty tree)"))
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lit := m.litNodes()
	for i := m.offset; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		title := r.title
		switch {
		case i == m.cursor:
			title = cursorStyle.Render(title)
		case lit[r.id]:
			title = litStyle.Render(title)
		}

		detail := r.detail
		if r.leaf && detail != "" && r.fill != "" {
			detail = lipgloss.NewStyle().Foreground(lipgloss.Color(r.fill)).Render(detail)
		} else if detail != "" {
			detail = detailStyle.Render(detail)
		}

		b.WriteString(cursor)
		b.WriteString(strings.Repeat("  ", r.depth))
		b.WriteString(title)
		if detail != "" {
			b.WriteString(" ")
			b.WriteString(detail)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v := m.surface.overlay; v != nil {
		b.WriteString(overlayStyle.Render(v.Text))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
