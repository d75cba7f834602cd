package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cpdeck/internal/domain"
	"cpdeck/internal/outline"
)

func testNavigator(height int) *outline.Navigator {
	o := outline.New([]outline.Group{
		{
			ID:       "Contest 4",
			Expanded: true,
			Items: []outline.Item{
				{ID: "4/A", Fields: domain.Problem{ContestID: "4", Index: "A", Name: "Watermelon", Rating: 800, SolvedCount: 15000}},
				{ID: "4/B", Fields: domain.Problem{ContestID: "4", Index: "B", Name: "Before an Exam", Rating: 1200}},
			},
		},
		{
			ID: "Contest 1428",
			Items: []outline.Item{
				{ID: "1428/A", Fields: domain.Problem{ContestID: "1428", Index: "A", Name: "Box is Pull"}},
			},
		},
	})
	return outline.NewNavigator(o, height)
}

func TestRebuildRendersWindow(t *testing.T) {
	nav := testNavigator(4)
	l := NewList(NewStyles(), 60, true)
	l.Sync(nav, nav.Resize(4))

	require.Equal(t, 4, l.Len())
	view := l.View()
	require.Contains(t, view, "▾ Contest 4 (2)")
	require.Contains(t, view, "A  Watermelon [800] ×15000")
	require.Contains(t, view, "▸ Contest 1428 (1)")
}

func TestSolvedCountsCanBeHidden(t *testing.T) {
	nav := testNavigator(4)
	l := NewList(NewStyles(), 60, false)
	l.Sync(nav, nav.Resize(4))

	require.NotContains(t, l.View(), "×15000")
}

func TestSwapOnlyTouchesTwoRows(t *testing.T) {
	nav := testNavigator(4)
	l := NewList(NewStyles(), 60, true)
	l.Sync(nav, nav.Resize(4))

	// Poison rows the swap must not touch.
	l.rows[2] = "sentinel-2"
	l.rows[3] = "sentinel-3"

	rd := nav.MoveBy(outline.By(1))
	require.False(t, rd.Full)
	l.Sync(nav, rd)

	require.Equal(t, "sentinel-2", l.rows[2])
	require.Equal(t, "sentinel-3", l.rows[3])
	require.False(t, strings.HasPrefix(l.rows[0], "sentinel"))
	require.False(t, strings.HasPrefix(l.rows[1], "sentinel"))
}

func TestWindowShiftRebuildsCache(t *testing.T) {
	nav := testNavigator(2)
	l := NewList(NewStyles(), 60, true)
	l.Sync(nav, nav.Resize(2))
	l.rows[0] = "sentinel"

	rd := nav.MoveBy(outline.By(3))
	require.True(t, rd.Full)
	l.Sync(nav, rd)

	for _, row := range l.rows {
		require.NotEqual(t, "sentinel", row)
	}
}

func TestRowsTruncateToWidth(t *testing.T) {
	nav := testNavigator(4)
	l := NewList(NewStyles(), 12, true)
	l.Sync(nav, nav.Resize(4))

	require.Contains(t, l.rows[0], "…")
}
