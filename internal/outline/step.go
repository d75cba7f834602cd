package outline

type stepKind uint8

const (
	stepBy stepKind = iota
	stepToStart
	stepToEnd
)

// Step is a relative motion: a finite signed slot count, or a jump to one
// of the outline's ends. The jump variants are distinct tags rather than
// numeric sentinels, so no arithmetic can be done on them by accident.
type Step struct {
	kind stepKind
	n    int
}

// By steps n slots forward (or backward for negative n). By(0) is a no-op.
func By(n int) Step {
	return Step{kind: stepBy, n: n}
}

// ToStart jumps to the first slot.
func ToStart() Step {
	return Step{kind: stepToStart}
}

// ToEnd jumps to the last selectable slot.
func ToEnd() Step {
	return Step{kind: stepToEnd}
}
