package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

var (
	previewSiteStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	previewCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewMirrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	previewPlainStyle   = lipgloss.NewStyle().Foreground(colorGray)
	previewResonator    = lipgloss.NewStyle().Foreground(colorGreen)
	previewFluxLine     = lipgloss.NewStyle().Foreground(colorPurple)
	previewPanelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	previewHelpStyle    = lipgloss.NewStyle().Foreground(colorDim)
	previewHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

type siteKey [2]int

// couplerKey orders its endpoints so lookups work in either direction.
func couplerKey(a, b siteKey) [2]siteKey {
	if a[0] > b[0] || (a[0] == b[0] && a[1] > b[1]) {
		a, b = b, a
	}
	return [2]siteKey{a, b}
}

// previewModel is the bubbletea model for browsing a placed lattice.
type previewModel struct {
	layout   layout.Layout
	sites    map[siteKey]layout.Qubit
	couplers map[[2]siteKey]layout.Coupler
	cells    map[siteKey]layout.Cell

	row, col int
}

func newPreviewModel(l layout.Layout) previewModel {
	m := previewModel{
		layout:   l,
		sites:    make(map[siteKey]layout.Qubit, len(l.Qubits)),
		couplers: make(map[[2]siteKey]layout.Coupler, len(l.Couplers)),
		cells:    make(map[siteKey]layout.Cell, len(l.Cells)),
	}
	for _, q := range l.Qubits {
		m.sites[siteKey{q.Row, q.Col}] = q
	}
	for _, c := range l.Couplers {
		m.couplers[couplerKey(c.From, c.To)] = c
	}
	for _, c := range l.Cells {
		m.cells[siteKey{c.Row, c.Col}] = c
	}
	return m
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	// rows grow upward on the chip, so "up" moves to a higher row
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.row < m.layout.Rows-1 {
			m.row++
		}
	case "down", "j":
		if m.row > 0 {
			m.row--
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < m.layout.Cols-1 {
			m.col++
		}
	case "home", "g":
		m.row, m.col = 0, 0
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%dx%d lattice", m.layout.Rows, m.layout.Cols)))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("pitch %.1f µm · %s", m.layout.Pitch, m.layout.Pattern)))
	b.WriteString("\n\n")

	grid := m.grid()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, "   ", previewPanelStyle.Render(m.details())))
	b.WriteString("\n\n")
	b.WriteString(previewHelpStyle.Render("←/→/↑/↓ move  g origin  q quit  ") +
		previewMirrorStyle.Render("━ mirrored") + "  " + previewPlainStyle.Render("─ plain") + "  " +
		previewResonator.Render("R resonator") + "  " + previewFluxLine.Render("F flux line"))
	b.WriteString("\n")
	return b.String()
}

// grid draws sites, couplers and cells with the highest row on top.
func (m previewModel) grid() string {
	var lines []string
	for r := m.layout.Rows - 1; r >= 0; r-- {
		var sites strings.Builder
		for c := 0; c < m.layout.Cols; c++ {
			sites.WriteString(m.siteGlyph(r, c))
			if c < m.layout.Cols-1 {
				sites.WriteString(m.couplerGlyph(siteKey{r, c}, siteKey{r, c + 1}, " ━━ ", " ── "))
			}
		}
		lines = append(lines, sites.String())
		if r == 0 {
			break
		}

		var links strings.Builder
		for c := 0; c < m.layout.Cols; c++ {
			links.WriteString(m.couplerGlyph(siteKey{r - 1, c}, siteKey{r, c}, "┃", "│"))
			if c < m.layout.Cols-1 {
				links.WriteString(m.cellGlyph(r-1, c))
			}
		}
		lines = append(lines, links.String())
	}
	return strings.Join(lines, "\n")
}

func (m previewModel) siteGlyph(r, c int) string {
	if r == m.row && c == m.col {
		return previewCursorStyle.Render("◉")
	}
	return previewSiteStyle.Render("●")
}

func (m previewModel) couplerGlyph(a, b siteKey, mirrored, plain string) string {
	cp, ok := m.couplers[couplerKey(a, b)]
	switch {
	case !ok:
		return strings.Repeat(" ", lipgloss.Width(plain))
	case cp.Mirror:
		return previewMirrorStyle.Render(mirrored)
	default:
		return previewPlainStyle.Render(plain)
	}
}

func (m previewModel) cellGlyph(r, c int) string {
	cell, ok := m.cells[siteKey{r, c}]
	if !ok {
		return "    "
	}
	if cell.Type == lattice.CellFluxLine.String() {
		return previewFluxLine.Render("  F ")
	}
	return previewResonator.Render("  R ")
}

// details describes the site under the cursor and its couplers.
func (m previewModel) details() string {
	q, ok := m.sites[siteKey{m.row, m.col}]
	if !ok {
		return StyleDim.Render("no site")
	}

	var b strings.Builder
	b.WriteString(previewHeadingStyle.Render(q.Label) + "\n")
	fmt.Fprintf(&b, "site      (%d,%d)\n", q.Row, q.Col)
	fmt.Fprintf(&b, "position  (%.1f, %.1f)\n", q.Position.X, q.Position.Y)

	neighbours := []siteKey{{q.Row, q.Col + 1}, {q.Row + 1, q.Col}, {q.Row, q.Col - 1}, {q.Row - 1, q.Col}}
	for _, n := range neighbours {
		cp, ok := m.couplers[couplerKey(siteKey{q.Row, q.Col}, n)]
		if !ok {
			continue
		}
		mirror := previewPlainStyle.Render("plain")
		if cp.Mirror {
			mirror = previewMirrorStyle.Render("mirrored")
		}
		fmt.Fprintf(&b, "%-4s %-10s %s\n", cp.Label, cp.Direction, mirror)
	}
	return strings.TrimRight(b.String(), "\n")
}

// previewCommand creates the preview command for the interactive lattice view.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		chip    chipFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Browse the lattice interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				l   layout.Layout
				err error
			)
			if len(args) == 1 {
				l, err = layout.ReadLayoutFile(args[0])
			} else {
				l, err = c.placeForPreview(ctx, &chip, noCache)
			}
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newPreviewModel(l), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	chip.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) placeForPreview(ctx context.Context, chip *chipFlags, noCache bool) (layout.Layout, error) {
	opts := pipeline.Options{NoLabels: true}
	if err := chip.apply(&opts); err != nil {
		return layout.Layout{}, err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return layout.Layout{}, err
	}
	defer runner.Close()
	return runner.Layout(ctx, opts)
}
