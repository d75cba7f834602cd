package outline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testNavigator(t *testing.T, height int) *Navigator {
	t.Helper()
	return NewNavigator(testOutline(), height)
}

func TestNavigatorInitialState(t *testing.T) {
	n := testNavigator(t, 4)
	require.Equal(t, HeaderPosition(0), n.Selected())
	require.Equal(t, HeaderPosition(0), n.ViewportStart())
	require.Equal(t, 0, n.SelectedRow())
}

func TestMoveWithinWindowIsSelectionSwap(t *testing.T) {
	n := testNavigator(t, 4)

	rd := n.MoveBy(By(1))
	require.False(t, rd.Full, "movement inside the window must not force a full repaint")
	require.Equal(t, 0, rd.OldRow)
	require.Equal(t, 1, rd.NewRow)
	require.Equal(t, HeaderPosition(1), n.Selected())
	require.Equal(t, HeaderPosition(0), n.ViewportStart(), "window unchanged on a swap")

	rd = n.MoveBy(By(1))
	require.False(t, rd.Full)
	require.Equal(t, 1, rd.OldRow)
	require.Equal(t, 2, rd.NewRow)
	require.Equal(t, ItemPosition(1, 0), n.Selected())
}

func TestMovePastWindowShiftsForward(t *testing.T) {
	n := NewNavigator(New([]Group{
		{ID: "a", Items: []Item{{ID: "a0"}, {ID: "a1"}, {ID: "a2"}, {ID: "a3"}}, Expanded: true},
		{ID: "b", Items: []Item{{ID: "b0"}, {ID: "b1"}}, Expanded: true},
	}), 3)

	rd := n.MoveBy(By(4))
	require.True(t, rd.Full)
	require.Equal(t, ItemPosition(0, 3), n.Selected())
	// Moved forward past the window: the selection lands on the last row.
	require.Equal(t, ItemPosition(0, 1), n.ViewportStart())
	require.Equal(t, 2, n.SelectedRow())
}

func TestMovePastWindowShiftsBackward(t *testing.T) {
	n := testNavigator(t, 2)
	n.MoveBy(ToEnd())
	require.Equal(t, ItemPosition(1, 1), n.Selected())

	rd := n.MoveBy(By(-3))
	require.True(t, rd.Full)
	require.Equal(t, HeaderPosition(0), n.Selected())
	// Moved backward past the window: the selection lands on the first row.
	require.Equal(t, HeaderPosition(0), n.ViewportStart())
	require.Equal(t, 0, n.SelectedRow())
}

func TestJumpSentinelsFitInOneWindow(t *testing.T) {
	// The whole outline fits: ToEnd stays a selection-swap.
	n := testNavigator(t, 10)
	rd := n.MoveBy(ToEnd())
	require.False(t, rd.Full)
	require.Equal(t, 0, rd.OldRow)
	require.Equal(t, 3, rd.NewRow)

	rd = n.MoveBy(ToStart())
	require.False(t, rd.Full)
	require.Equal(t, HeaderPosition(0), n.Selected())
}

func TestHugeBackwardMoveClamps(t *testing.T) {
	n := testNavigator(t, 4)
	n.MoveBy(ToEnd())
	rd := n.MoveBy(By(-1000))
	require.Equal(t, HeaderPosition(0), n.Selected())
	require.False(t, rd.Full, "fits in one window, so even the clamped jump is a swap")
}

func TestToggleGroupExpandsAndRepaints(t *testing.T) {
	n := testNavigator(t, 4)
	n.MoveBy(By(1))
	n.MoveBy(By(1)) // selection on (1, 0)

	rd := n.ToggleGroup(0)
	require.True(t, rd.Full, "structural change always repaints the window")
	require.Equal(t, 7, n.Outline().SlotCount())
	require.Equal(t, ItemPosition(1, 0), n.Selected(), "selection survives expansion of an earlier group")

	// Window invariant still holds after the slots shifted underneath.
	dist := n.Outline().SlotIndex(n.Selected()) - n.Outline().SlotIndex(n.ViewportStart())
	require.GreaterOrEqual(t, dist, 0)
	require.Less(t, dist, n.Height())
}

func TestCollapseUnderSelectionReclampsToHeader(t *testing.T) {
	n := testNavigator(t, 4)
	n.MoveBy(By(3)) // selection on (1, 1)
	require.Equal(t, ItemPosition(1, 1), n.Selected())

	rd := n.ToggleGroup(1)
	require.True(t, rd.Full)
	require.Equal(t, HeaderPosition(1), n.Selected(), "collapsing the selected group lands on its header")
	require.Equal(t, 2, n.Outline().SlotCount())
}

func TestScrollViewportClampsSelection(t *testing.T) {
	o := New([]Group{
		{ID: "a", Items: []Item{{ID: "a0"}, {ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"}}, Expanded: true},
	})
	n := NewNavigator(o, 3)

	rd := n.ScrollBy(2)
	require.True(t, rd.Full)
	require.Equal(t, ItemPosition(0, 1), n.ViewportStart())
	require.Equal(t, ItemPosition(0, 1), n.Selected(), "selection clamped to the top row when scrolled past it")

	n.MoveBy(ToEnd())
	rd = n.ScrollBy(-4)
	require.True(t, rd.Full)
	require.Equal(t, HeaderPosition(0), n.ViewportStart())
	require.Equal(t, ItemPosition(0, 1), n.Selected(), "selection clamped to the bottom row when scrolled above it")
}

func TestResizeRepinsSelectionToFirstRow(t *testing.T) {
	n := testNavigator(t, 4)
	n.MoveBy(By(2))

	rd := n.Resize(2)
	require.True(t, rd.Full)
	require.Equal(t, n.Selected(), n.ViewportStart())
	require.Equal(t, 0, n.SelectedRow())
	require.Equal(t, 2, n.Height())
}

func TestStatusRoundTrip(t *testing.T) {
	n := testNavigator(t, 4)
	n.MoveBy(By(2))
	saved := n.Status()

	n.MoveBy(ToEnd())
	n.MoveBy(By(-1))
	require.NotEqual(t, saved, n.Status())

	rd := n.Restore(saved)
	require.True(t, rd.Full)
	require.Equal(t, saved.Selected, n.Selected())
	require.Equal(t, saved.ViewportStart, n.ViewportStart())
}

func TestVisibleRows(t *testing.T) {
	n := testNavigator(t, 4)
	require.Equal(t, []Position{
		HeaderPosition(0),
		HeaderPosition(1),
		ItemPosition(1, 0),
		ItemPosition(1, 1),
	}, n.Visible())

	n.Resize(2)
	require.Len(t, n.Visible(), 2)

	// A window taller than the outline reports only the real rows.
	n.Resize(20)
	require.Len(t, n.Visible(), 4)
}

func TestEmptyOutlineIsTolerated(t *testing.T) {
	n := NewNavigator(New(nil), 5)
	require.Nil(t, n.Visible())
	require.Equal(t, -1, n.SelectedRow())
	require.NotPanics(t, func() {
		n.MoveBy(By(3))
		n.MoveBy(ToEnd())
		n.ScrollBy(-2)
		n.Resize(7)
	})
}

func TestNavigatorWindowInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		n := NewNavigator(o, rapid.IntRange(1, 6).Draw(t, "height"))

		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("op%d", i)) {
			case 0:
				n.MoveBy(By(rapid.IntRange(-10, 10).Draw(t, fmt.Sprintf("n%d", i))))
			case 1:
				n.MoveBy(ToEnd())
			case 2:
				n.MoveBy(ToStart())
			case 3:
				n.Resize(rapid.IntRange(1, 6).Draw(t, fmt.Sprintf("h%d", i)))
			case 4:
				n.ToggleGroup(rapid.IntRange(0, o.Len()-1).Draw(t, fmt.Sprintf("g%d", i)))
			}

			dist := o.SlotIndex(n.Selected()) - o.SlotIndex(n.ViewportStart())
			if dist < 0 || dist >= n.Height() {
				t.Fatalf("window invariant broken after op %d: start=%v selected=%v height=%d dist=%d",
					i, n.ViewportStart(), n.Selected(), n.Height(), dist)
			}
		}
	})
}

func TestMoveWithinWindowNeverFullRepaints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		n := NewNavigator(o, rapid.IntRange(1, 6).Draw(t, "height"))

		// Random walk; whenever the target stays in the window, the redraw
		// must be a two-row swap.
		for i := 0; i < 20; i++ {
			startIdx := o.SlotIndex(n.ViewportStart())
			selIdx := o.SlotIndex(n.Selected())
			step := rapid.IntRange(-8, 8).Draw(t, fmt.Sprintf("step%d", i))

			target := selIdx + step
			if target < 0 {
				target = 0
			}
			if max := o.SlotCount() - 1; target > max {
				target = max
			}
			inWindow := target >= startIdx && target < startIdx+n.Height()

			rd := n.MoveBy(By(step))
			if inWindow && rd.Full {
				t.Fatalf("move of %d kept selection in window (row %d) but reported a full repaint",
					step, target-startIdx)
			}
			if !inWindow && !rd.Full {
				t.Fatalf("move of %d left the window but reported a swap", step)
			}
		}
	})
}
