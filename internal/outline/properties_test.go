package outline

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// genOutline draws a non-empty outline with arbitrary per-group sizes and
// expansion flags.
func genOutline(t *rapid.T) *Outline {
	n := rapid.IntRange(1, 8).Draw(t, "groups")
	groups := make([]Group, n)
	for g := range groups {
		items := make([]Item, rapid.IntRange(0, 6).Draw(t, fmt.Sprintf("items%d", g)))
		for i := range items {
			items[i] = Item{ID: fmt.Sprintf("g%d-i%d", g, i)}
		}
		groups[g] = Group{
			ID:       fmt.Sprintf("g%d", g),
			Items:    items,
			Expanded: rapid.Bool().Draw(t, fmt.Sprintf("expanded%d", g)),
		}
	}
	return New(groups)
}

// genPosition draws a position valid under o's current expansion state.
func genPosition(t *rapid.T, o *Outline) Position {
	g := rapid.IntRange(0, o.Len()-1).Draw(t, "posGroup")
	grp := o.Group(g)
	if !grp.Expanded || len(grp.Items) == 0 {
		return HeaderPosition(g)
	}
	i := rapid.IntRange(-1, len(grp.Items)-1).Draw(t, "posItem")
	return Position{Group: g, Item: i}
}

func TestAdvanceMatchesFlatWalk(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		pos := genPosition(t, o)
		n := rapid.IntRange(-100, 100).Draw(t, "n")

		got := o.Advance(pos, By(n))

		// Oracle: advancing is plain addition on flattened slot indices,
		// clamped to the valid range.
		want := o.SlotIndex(pos) + n
		if want < 0 {
			want = 0
		}
		if max := o.SlotCount() - 1; want > max {
			want = max
		}
		if o.SlotIndex(got) != want {
			t.Fatalf("Advance(%v, %d) = %v (slot %d), want slot %d", pos, n, got, o.SlotIndex(got), want)
		}
	})
}

func TestAdvanceNeverLeavesBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		pos := genPosition(t, o)
		n := rapid.IntRange(-1000000, 1000000).Draw(t, "n")

		got := o.Advance(pos, By(n))
		if Compare(got, o.First()) < 0 || Compare(got, o.Last()) > 0 {
			t.Fatalf("Advance(%v, %d) = %v escaped [%v, %v]", pos, n, got, o.First(), o.Last())
		}
	})
}

func TestAdvanceZeroStepIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		pos := genPosition(t, o)
		if got := o.Advance(pos, By(0)); got != pos {
			t.Fatalf("Advance(%v, 0) = %v, want identity", pos, got)
		}
	})
}

func TestExtremesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		pos := genPosition(t, o)
		got := o.Advance(o.Advance(pos, ToEnd()), ToStart())
		if got != o.First() {
			t.Fatalf("ToEnd then ToStart from %v = %v, want %v", pos, got, o.First())
		}
	})
}

func TestSingleStepIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := genOutline(t)
		pos := genPosition(t, o)
		next := o.Advance(pos, By(1))
		switch Compare(pos, next) {
		case 1:
			t.Fatalf("stepping forward decreased: %v -> %v", pos, next)
		case 0:
			if pos != o.Last() {
				t.Fatalf("stepping forward stalled at %v before the last slot %v", pos, o.Last())
			}
		}
	})
}
