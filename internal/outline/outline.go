package outline

import "fmt"

// Item is one selectable entry inside a group. ID is used for display and
// equality only, never for addressing. Fields carries the caller's display
// payload and is opaque to this package.
type Item struct {
	ID     string
	Fields any
}

// Group is an ordered run of items under one header slot. A collapsed group
// contributes only its header to the flattened view.
type Group struct {
	ID       string
	Items    []Item
	Expanded bool
}

// Outline is an ordered sequence of groups, each independently collapsible.
// Group order is fixed at construction; callers sort before building.
type Outline struct {
	groups []Group
}

// New creates an outline over the given groups. The slice is owned by the
// outline afterwards.
func New(groups []Group) *Outline {
	return &Outline{groups: groups}
}

// Len returns the number of groups.
func (o *Outline) Len() int {
	return len(o.groups)
}

// Group returns the group at index i.
func (o *Outline) Group(i int) *Group {
	o.mustGroup(i)
	return &o.groups[i]
}

// SetExpanded flips one group's expansion flag. It does not move any
// position; callers holding positions into the group must reclamp them
// afterwards.
func (o *Outline) SetExpanded(i int, expanded bool) {
	o.mustGroup(i)
	o.groups[i].Expanded = expanded
}

// span is the number of slots a group contributes: its header plus one per
// item when expanded.
func (o *Outline) span(g int) int {
	if o.groups[g].Expanded {
		return 1 + len(o.groups[g].Items)
	}
	return 1
}

// SlotCount returns the total number of selectable slots under the current
// expansion state.
func (o *Outline) SlotCount() int {
	total := 0
	for g := range o.groups {
		total += o.span(g)
	}
	return total
}

// First returns the position of the first slot.
func (o *Outline) First() Position {
	o.mustNonEmpty()
	return HeaderPosition(0)
}

// Last returns the position of the last selectable slot: the last item of
// the last group when it is expanded and non-empty, its header otherwise.
func (o *Outline) Last() Position {
	o.mustNonEmpty()
	g := len(o.groups) - 1
	if o.groups[g].Expanded && len(o.groups[g].Items) > 0 {
		return ItemPosition(g, len(o.groups[g].Items)-1)
	}
	return HeaderPosition(g)
}

// Advance walks from pos by the given step, clamping at the outline's ends.
// A zero step is the identity. The walk skips whole groups arithmetically,
// so the cost is proportional to the number of groups crossed, not the
// number of slots.
func (o *Outline) Advance(pos Position, st Step) Position {
	o.mustNonEmpty()
	switch st.kind {
	case stepToStart:
		return o.First()
	case stepToEnd:
		return o.Last()
	}
	o.mustPosition(pos)
	switch {
	case st.n > 0:
		return o.forward(pos, st.n)
	case st.n < 0:
		return o.backward(pos, -st.n)
	}
	return pos
}

func (o *Outline) forward(pos Position, n int) Position {
	g := pos.Group
	// Offset within group g: 0 is the header, k+1 is item k.
	off := pos.Item + 1 + n
	for off >= o.span(g) {
		if g == len(o.groups)-1 {
			off = o.span(g) - 1
			break
		}
		off -= o.span(g)
		g++
	}
	return Position{Group: g, Item: off - 1}
}

func (o *Outline) backward(pos Position, n int) Position {
	g := pos.Group
	off := pos.Item + 1 - n
	for off < 0 {
		if g == 0 {
			off = 0
			break
		}
		g--
		off += o.span(g)
	}
	return Position{Group: g, Item: off - 1}
}

// SlotIndex returns the absolute slot offset of pos in the flattened view,
// in O(groups) time.
func (o *Outline) SlotIndex(pos Position) int {
	o.mustPosition(pos)
	idx := 0
	for g := 0; g < pos.Group; g++ {
		idx += o.span(g)
	}
	return idx + pos.Item + 1
}

// mustPosition panics when pos is not addressable under the current
// expansion state. This is a contract violation by the caller, not a
// recoverable condition: positions are produced by this package and only
// invalidated by bypassing its bookkeeping.
func (o *Outline) mustPosition(pos Position) {
	o.mustGroup(pos.Group)
	if pos.Item < 0 {
		return
	}
	g := &o.groups[pos.Group]
	if !g.Expanded || pos.Item >= len(g.Items) {
		panic(fmt.Sprintf("outline: position %v not addressable (group %q expanded=%v, %d items)",
			pos, g.ID, g.Expanded, len(g.Items)))
	}
}

func (o *Outline) mustGroup(i int) {
	if i < 0 || i >= len(o.groups) {
		panic(fmt.Sprintf("outline: group index %d out of range [0,%d)", i, len(o.groups)))
	}
}

func (o *Outline) mustNonEmpty() {
	if len(o.groups) == 0 {
		panic("outline: operation on empty outline")
	}
}
