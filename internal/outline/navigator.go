package outline

import "fmt"

// Redraw tells the renderer the minimal repaint needed after an operation.
// A selection-swap leaves the window in place and names the two affected
// rows; a window-shift invalidates every visible row.
type Redraw struct {
	Full   bool
	OldRow int
	NewRow int
}

func swapRedraw(oldRow, newRow int) Redraw {
	return Redraw{OldRow: oldRow, NewRow: newRow}
}

var fullRedraw = Redraw{Full: true, OldRow: -1, NewRow: -1}

// Status is an opaque snapshot of a navigator's selection and window,
// used to restore an exact prior view after drilling into another level.
type Status struct {
	Selected      Position
	ViewportStart Position
}

// Navigator wraps an outline with a fixed-height window and a current
// selection. Every motion keeps the invariant that the selection lies
// within the first height slots counted from the viewport start.
//
// All operations are total over valid states: out-of-range motion clamps,
// it never errors. The navigator tolerates an empty outline (a catalogue
// that failed to load) by turning every operation into a no-op.
type Navigator struct {
	outline  *Outline
	selected Position
	start    Position
	height   int
}

// NewNavigator creates a navigator over o with the given window height.
func NewNavigator(o *Outline, height int) *Navigator {
	if height <= 0 {
		panic(fmt.Sprintf("outline: navigator height must be positive, got %d", height))
	}
	n := &Navigator{outline: o, height: height}
	if o.Len() > 0 {
		n.selected = o.First()
		n.start = o.First()
	}
	return n
}

// Outline returns the navigated outline.
func (n *Navigator) Outline() *Outline { return n.outline }

// Selected returns the current selection.
func (n *Navigator) Selected() Position { return n.selected }

// ViewportStart returns the first visible slot.
func (n *Navigator) ViewportStart() Position { return n.start }

// Height returns the window height in slots.
func (n *Navigator) Height() int { return n.height }

func (n *Navigator) empty() bool { return n.outline.Len() == 0 }

// Resize sets the window height and re-pins the window so the selection
// becomes the first visible slot. A resize is never rejected and always
// requires a full repaint.
func (n *Navigator) Resize(height int) Redraw {
	if height < 1 {
		height = 1
	}
	n.height = height
	if !n.empty() {
		n.start = n.selected
	}
	return fullRedraw
}

// MoveBy advances the selection by the given step. When the new selection
// stays inside the current window the result is a selection-swap naming
// the old and new rows; otherwise the window shifts so the selection lands
// on the first row (moved backward past the window) or the last row
// (moved forward past it).
func (n *Navigator) MoveBy(st Step) Redraw {
	if n.empty() {
		return fullRedraw
	}
	oldSel := n.selected
	newSel := n.outline.Advance(n.selected, st)
	startIdx := n.outline.SlotIndex(n.start)
	dist := n.outline.SlotIndex(newSel) - startIdx
	if dist >= 0 && dist < n.height {
		n.selected = newSel
		return swapRedraw(n.outline.SlotIndex(oldSel)-startIdx, dist)
	}
	n.selected = newSel
	if dist < 0 {
		n.start = newSel
	} else {
		n.start = n.outline.Advance(newSel, By(-(n.height - 1)))
	}
	return fullRedraw
}

// ToggleGroup flips the expansion state of one group. Collapsing a group
// that contains the selection (or the viewport start) reclamps it to the
// group's header. Slot counts downstream of the group have shifted, so the
// whole window repaints.
func (n *Navigator) ToggleGroup(group int) Redraw {
	expanded := !n.outline.Group(group).Expanded
	n.outline.SetExpanded(group, expanded)
	if !expanded {
		if n.selected.Group == group && !n.selected.IsHeader() {
			n.selected = HeaderPosition(group)
		}
		if n.start.Group == group && !n.start.IsHeader() {
			n.start = HeaderPosition(group)
		}
	}
	n.repin()
	return fullRedraw
}

// ScrollBy moves the window by delta slots without moving the selection;
// when the selection would leave the window it is clamped to the nearest
// in-window row.
func (n *Navigator) ScrollBy(delta int) Redraw {
	if n.empty() || delta == 0 {
		return fullRedraw
	}
	n.start = n.outline.Advance(n.start, By(delta))
	dist := n.outline.SlotIndex(n.selected) - n.outline.SlotIndex(n.start)
	if dist < 0 {
		n.selected = n.start
	} else if dist >= n.height {
		n.selected = n.outline.Advance(n.start, By(n.height-1))
	}
	return fullRedraw
}

// Status snapshots the selection and window for later restoration.
func (n *Navigator) Status() Status {
	return Status{Selected: n.selected, ViewportStart: n.start}
}

// Restore reinstates a snapshot taken by Status. The positions must still
// be addressable under the outline's current expansion state; the window
// is re-pinned if the height changed in between.
func (n *Navigator) Restore(st Status) Redraw {
	if n.empty() {
		return fullRedraw
	}
	n.outline.mustPosition(st.Selected)
	n.outline.mustPosition(st.ViewportStart)
	n.selected = st.Selected
	n.start = st.ViewportStart
	n.repin()
	return fullRedraw
}

// repin restores the window invariant: start <= selected in slot order and
// the slot distance between them is below the window height.
func (n *Navigator) repin() {
	if n.empty() {
		return
	}
	dist := n.outline.SlotIndex(n.selected) - n.outline.SlotIndex(n.start)
	if dist < 0 {
		n.start = n.selected
	} else if dist >= n.height {
		n.start = n.outline.Advance(n.selected, By(-(n.height - 1)))
	}
}

// SelectedRow returns the selection's row within the window, or -1 when
// the outline is empty.
func (n *Navigator) SelectedRow() int {
	if n.empty() {
		return -1
	}
	return n.outline.SlotIndex(n.selected) - n.outline.SlotIndex(n.start)
}

// Visible returns the positions of the window's rows in top-to-bottom
// order. Fewer than Height positions are returned when the outline ends
// before the window does.
func (n *Navigator) Visible() []Position {
	if n.empty() {
		return nil
	}
	rows := make([]Position, 0, n.height)
	pos := n.start
	last := n.outline.Last()
	for i := 0; i < n.height; i++ {
		rows = append(rows, pos)
		if pos == last {
			break
		}
		pos = n.outline.Advance(pos, By(1))
	}
	return rows
}
