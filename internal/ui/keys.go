package ui

// stepCount resolves a pending count prefix for single-step motions: no
// prefix (or an explicit 0) means one step.
func stepCount(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

// pageCount resolves a pending count prefix for page motions, which move
// ten slots per count.
func pageCount(count int) int {
	return 10 * stepCount(count)
}
