package outline

// Position addresses one slot in the flattened view: a group header when
// Item is -1, or item Item of an expanded group otherwise. Ordering is
// lexicographic, with the header sorting immediately before its first item.
type Position struct {
	Group int
	Item  int
}

// HeaderPosition addresses the header slot of group g.
func HeaderPosition(g int) Position {
	return Position{Group: g, Item: -1}
}

// ItemPosition addresses item i of group g.
func ItemPosition(g, i int) Position {
	return Position{Group: g, Item: i}
}

// IsHeader reports whether p addresses a group header.
func (p Position) IsHeader() bool {
	return p.Item < 0
}

// Compare orders two positions lexicographically, returning -1, 0 or 1.
func Compare(a, b Position) int {
	switch {
	case a.Group < b.Group:
		return -1
	case a.Group > b.Group:
		return 1
	case a.Item < b.Item:
		return -1
	case a.Item > b.Item:
		return 1
	}
	return 0
}
