package domain

import "fmt"

// Problem is one entry in a contest's problem list.
type Problem struct {
	ContestID   string
	Index       string // problem letter within the contest, e.g. "A", "B1"
	Name        string
	Rating      int
	SolvedCount int
	Tags        []string
}

// Key returns the unique "contest/index" identifier of the problem.
func (p Problem) Key() string {
	return p.ContestID + "/" + p.Index
}

// Label is the one-line form shown in the problem list.
func (p Problem) Label() string {
	return fmt.Sprintf("%s/%s: %s (solved=%d)", p.ContestID, p.Index, p.Name, p.SolvedCount)
}

// Contest is an ordered collection of problems under one heading.
type Contest struct {
	ID       string
	Name     string
	Problems []Problem
}

// Catalogue is the full ordered problem set of one source. Contests and
// problems arrive already sorted by the source; the UI never re-sorts.
type Catalogue struct {
	Source   string
	Contests []Contest
}

// ProblemCount returns the total number of problems across all contests.
func (c Catalogue) ProblemCount() int {
	n := 0
	for _, contest := range c.Contests {
		n += len(contest.Problems)
	}
	return n
}
