package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"cpdeck/internal/domain"
	"cpdeck/internal/outline"
)

// List renders an outline navigator's window. Rendered rows are cached so a
// selection-swap only re-renders the two affected rows; a window-shift
// rebuilds the whole cache.
type List struct {
	styles     *Styles
	width      int
	showSolved bool
	rows       []string
}

// NewList creates a list renderer.
func NewList(styles *Styles, width int, showSolved bool) *List {
	return &List{styles: styles, width: width, showSolved: showSolved}
}

// SetWidth changes the render width and invalidates the row cache.
func (l *List) SetWidth(width int) {
	if width == l.width {
		return
	}
	l.width = width
	l.rows = nil
}

// Sync brings the row cache up to date after a navigator operation.
func (l *List) Sync(nav *outline.Navigator, rd outline.Redraw) {
	if rd.Full || l.rows == nil {
		l.rebuild(nav)
		return
	}

	sel := nav.SelectedRow()
	for _, row := range []int{rd.OldRow, rd.NewRow} {
		if row < 0 || row >= len(l.rows) {
			continue
		}
		pos := nav.Outline().Advance(nav.ViewportStart(), outline.By(row))
		l.rows[row] = l.renderRow(nav, pos, row == sel)
	}
}

func (l *List) rebuild(nav *outline.Navigator) {
	visible := nav.Visible()
	sel := nav.SelectedRow()
	rows := make([]string, len(visible))
	for i, pos := range visible {
		rows[i] = l.renderRow(nav, pos, i == sel)
	}
	l.rows = rows
}

// Len returns the number of cached rows.
func (l *List) Len() int {
	return len(l.rows)
}

// View joins the cached rows for display.
func (l *List) View() string {
	return strings.Join(l.rows, "\n")
}

func (l *List) renderRow(nav *outline.Navigator, pos outline.Position, selected bool) string {
	g := nav.Outline().Group(pos.Group)

	var line string
	if pos.IsHeader() {
		marker := "▸"
		if g.Expanded {
			marker = "▾"
		}
		line = fmt.Sprintf("%s %s (%d)", marker, g.ID, len(g.Items))
	} else {
		line = "    " + l.itemLabel(g.Items[pos.Item])
	}

	line = runewidth.Truncate(line, l.width, "…")
	line = runewidth.FillRight(line, l.width)

	if selected {
		return l.styles.Selected.Render(line)
	}
	if pos.IsHeader() {
		return l.styles.Header.Render(line)
	}
	return l.styles.Item.Render(line)
}

func (l *List) itemLabel(it outline.Item) string {
	p, ok := it.Fields.(domain.Problem)
	if !ok {
		return it.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-2s %s", p.Index, p.Name)
	if p.Rating > 0 {
		fmt.Fprintf(&b, " [%d]", p.Rating)
	}
	if l.showSolved && p.SolvedCount > 0 {
		fmt.Fprintf(&b, " ×%d", p.SolvedCount)
	}
	return b.String()
}
